package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// fakeChatAPI records fetched rooms and signals each fetch on a channel so
// tests can wait without sleeping.
type fakeChatAPI struct {
	mu       sync.Mutex
	fetched  []int
	sent     []string
	unread   int
	fetchSig chan struct{}
	countSig chan struct{}
}

func newFakeChatAPI() *fakeChatAPI {
	return &fakeChatAPI{
		fetchSig: make(chan struct{}, 64),
		countSig: make(chan struct{}, 64),
	}
}

func (f *fakeChatAPI) ListChatRooms(ctx context.Context) ([]api.ChatRoom, error) {
	return []api.ChatRoom{{RoomID: 1}}, nil
}

func (f *fakeChatAPI) OpenChatRoom(ctx context.Context, sellerID int) (*api.ChatRoom, error) {
	return &api.ChatRoom{RoomID: 1, SellerID: sellerID}, nil
}

func (f *fakeChatAPI) GetChatMessages(ctx context.Context, roomID int) ([]api.ChatMessage, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, roomID)
	f.mu.Unlock()
	f.fetchSig <- struct{}{}
	return []api.ChatMessage{{MessageID: 1, Content: "hello"}}, nil
}

func (f *fakeChatAPI) SendChatMessage(ctx context.Context, roomID int, content string) (*api.ChatMessage, error) {
	f.mu.Lock()
	f.sent = append(f.sent, content)
	f.mu.Unlock()
	return &api.ChatMessage{MessageID: 2, Content: content}, nil
}

func (f *fakeChatAPI) GetUnreadCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	count := f.unread
	f.mu.Unlock()
	f.countSig <- struct{}{}
	return count, nil
}

func (f *fakeChatAPI) fetchedRooms() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.fetched...)
}

func waitSignal(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a poll")
	}
}

func testPoller(fake *fakeChatAPI, roomInterval time.Duration) *Poller {
	cfg := core.DefaultConfig()
	cfg.Chat.RoomPollInterval = roomInterval
	cfg.Chat.UnreadPollInterval = roomInterval
	return NewPoller(fake, cfg, nil)
}

func TestOpenRoomFetchesImmediately(t *testing.T) {
	fake := newFakeChatAPI()
	poller := testPoller(fake, time.Hour)

	var mu sync.Mutex
	var delivered []api.ChatMessage
	sub := poller.OpenRoom(context.Background(), 7, func(msgs []api.ChatMessage) {
		mu.Lock()
		delivered = msgs
		mu.Unlock()
	})
	defer sub.Close()

	// The first fetch happens before any tick; the interval here is an hour.
	waitSignal(t, fake.fetchSig)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1)
	assert.Equal(t, "hello", delivered[0].Content)
	assert.Equal(t, []int{7}, fake.fetchedRooms())
}

func TestOpenRoomPollsOnInterval(t *testing.T) {
	fake := newFakeChatAPI()
	poller := testPoller(fake, 10*time.Millisecond)

	sub := poller.OpenRoom(context.Background(), 7, nil)
	defer sub.Close()

	// Immediate fetch plus at least two ticks.
	for i := 0; i < 3; i++ {
		waitSignal(t, fake.fetchSig)
	}
}

func TestCloseStopsPolling(t *testing.T) {
	fake := newFakeChatAPI()
	poller := testPoller(fake, 5*time.Millisecond)

	sub := poller.OpenRoom(context.Background(), 7, nil)
	waitSignal(t, fake.fetchSig)
	sub.Close()

	// Close blocks until the goroutine exits, so the count is stable now.
	before := len(fake.fetchedRooms())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, len(fake.fetchedRooms()))
}

func TestSend(t *testing.T) {
	fake := newFakeChatAPI()
	poller := testPoller(fake, time.Hour)

	sub := poller.OpenRoom(context.Background(), 7, nil)
	defer sub.Close()
	waitSignal(t, fake.fetchSig)

	err := sub.Send(context.Background(), "")
	assert.True(t, core.IsValidation(err))
	assert.Empty(t, fake.sent)

	require.NoError(t, sub.Send(context.Background(), "kamusta"))
	assert.Equal(t, []string{"kamusta"}, fake.sent)

	// Sending refetches right away instead of waiting for the next tick.
	waitSignal(t, fake.fetchSig)
	assert.Equal(t, []int{7, 7}, fake.fetchedRooms())
}

func TestSecondOpenRoomCancelsFirst(t *testing.T) {
	fake := newFakeChatAPI()
	poller := testPoller(fake, time.Hour)

	first := poller.OpenRoom(context.Background(), 1, nil)
	waitSignal(t, fake.fetchSig)

	second := poller.OpenRoom(context.Background(), 2, nil)
	defer second.Close()
	waitSignal(t, fake.fetchSig)

	assert.Equal(t, []int{1, 2}, fake.fetchedRooms())

	// The first subscription is already closed; closing again is harmless.
	first.Close()
}

func TestWatchUnread(t *testing.T) {
	fake := newFakeChatAPI()
	fake.unread = 4
	poller := testPoller(fake, 10*time.Millisecond)

	var mu sync.Mutex
	var counts []int
	sub := poller.WatchUnread(context.Background(), func(n int) {
		mu.Lock()
		counts = append(counts, n)
		mu.Unlock()
	})

	// Immediate delivery plus at least one tick.
	waitSignal(t, fake.countSig)
	waitSignal(t, fake.countSig)
	sub.Close()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, counts)
	assert.Equal(t, 4, counts[0])
}
