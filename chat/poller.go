// Package chat implements the polling chat client. There is no push
// transport; an open room refetches its messages on a fixed interval and a
// global unread counter polls independently on a longer one. Subscriptions
// are cancellable objects so view teardown deterministically stops polling.
package chat

import (
	"context"
	"sync"
	"time"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// chatAPI is the slice of the api client the poller needs.
type chatAPI interface {
	ListChatRooms(ctx context.Context) ([]api.ChatRoom, error)
	OpenChatRoom(ctx context.Context, sellerID int) (*api.ChatRoom, error)
	GetChatMessages(ctx context.Context, roomID int) ([]api.ChatMessage, error)
	SendChatMessage(ctx context.Context, roomID int, content string) (*api.ChatMessage, error)
	GetUnreadCount(ctx context.Context) (int, error)
}

// Poller owns the chat polling lifecycle. Only one room subscription is
// active at a time; opening another room cancels the previous one.
type Poller struct {
	client         chatAPI
	logger         core.Logger
	roomInterval   time.Duration
	unreadInterval time.Duration

	mu         sync.Mutex
	activeRoom *RoomSubscription
}

func NewPoller(client chatAPI, cfg *core.Config, logger core.Logger) *Poller {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &Poller{
		client:         client,
		logger:         logger,
		roomInterval:   cfg.Chat.RoomPollInterval,
		unreadInterval: cfg.Chat.UnreadPollInterval,
	}
}

// Rooms lists the user's chat rooms.
func (p *Poller) Rooms(ctx context.Context) ([]api.ChatRoom, error) {
	return p.client.ListChatRooms(ctx)
}

// RoomWith returns the room with a seller, creating it if needed.
func (p *Poller) RoomWith(ctx context.Context, sellerID int) (*api.ChatRoom, error) {
	return p.client.OpenChatRoom(ctx, sellerID)
}

// RoomSubscription is an open room view: it delivers the message list on
// open, after every poll tick and after every send. Close stops the polling
// goroutine and waits for it to exit.
type RoomSubscription struct {
	poller *Poller
	roomID int

	cancel context.CancelFunc
	done   chan struct{}

	onMessages func([]api.ChatMessage)
}

// OpenRoom starts polling a room. The callback runs on the polling
// goroutine; it must not block. The first message list is fetched
// immediately, before the first tick.
func (p *Poller) OpenRoom(ctx context.Context, roomID int, onMessages func([]api.ChatMessage)) *RoomSubscription {
	p.mu.Lock()
	if p.activeRoom != nil {
		prev := p.activeRoom
		p.activeRoom = nil
		p.mu.Unlock()
		prev.Close()
		p.mu.Lock()
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &RoomSubscription{
		poller:     p,
		roomID:     roomID,
		cancel:     cancel,
		done:       make(chan struct{}),
		onMessages: onMessages,
	}
	p.activeRoom = sub
	p.mu.Unlock()

	go sub.run(ctx)
	return sub
}

func (s *RoomSubscription) run(ctx context.Context) {
	defer close(s.done)

	s.fetch(ctx)

	ticker := time.NewTicker(s.poller.roomInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetch(ctx)
		}
	}
}

// fetch polls once. Failures are silent; the next tick retries.
func (s *RoomSubscription) fetch(ctx context.Context) {
	messages, err := s.poller.client.GetChatMessages(ctx, s.roomID)
	if err != nil {
		if ctx.Err() == nil {
			s.poller.logger.Debug("Chat poll failed", map[string]interface{}{
				"room_id": s.roomID,
				"error":   err.Error(),
			})
		}
		return
	}
	if s.onMessages != nil {
		s.onMessages(messages)
	}
}

// Send posts a message and immediately refetches the room so the sender
// sees their message without waiting for the next tick. The send error is
// not silent, unlike poll errors.
func (s *RoomSubscription) Send(ctx context.Context, content string) error {
	if content == "" {
		return core.ValidationError("chat.Send", "message cannot be empty")
	}
	if _, err := s.poller.client.SendChatMessage(ctx, s.roomID, content); err != nil {
		return err
	}
	s.fetch(ctx)
	return nil
}

// RoomID identifies the subscribed room.
func (s *RoomSubscription) RoomID() int { return s.roomID }

// Close cancels the subscription and blocks until the polling goroutine has
// exited, so no callback can touch a torn-down view afterwards.
func (s *RoomSubscription) Close() {
	s.cancel()
	<-s.done

	s.poller.mu.Lock()
	if s.poller.activeRoom == s {
		s.poller.activeRoom = nil
	}
	s.poller.mu.Unlock()
}

// UnreadSubscription polls the global unread count.
type UnreadSubscription struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// WatchUnread polls the unread-count endpoint on the long interval,
// independent of any open room. The count is delivered immediately and then
// once per tick.
func (p *Poller) WatchUnread(ctx context.Context, onCount func(int)) *UnreadSubscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &UnreadSubscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)

		poll := func() {
			count, err := p.client.GetUnreadCount(ctx)
			if err != nil {
				return
			}
			if onCount != nil {
				onCount(count)
			}
		}

		poll()
		ticker := time.NewTicker(p.unreadInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				poll()
			}
		}
	}()
	return sub
}

// Close stops the unread polling goroutine and waits for it to exit.
func (u *UnreadSubscription) Close() {
	u.cancel()
	<-u.done
}
