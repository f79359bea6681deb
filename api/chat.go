package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ListChatRooms fetches the rooms the authenticated user participates in.
func (c *Client) ListChatRooms(ctx context.Context) ([]ChatRoom, error) {
	var resp struct {
		Rooms []ChatRoom `json:"rooms"`
	}
	if err := c.get(ctx, "chat.ListRooms", "/chat/rooms", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// OpenChatRoom returns the room with the given seller, creating it if none
// exists yet.
func (c *Client) OpenChatRoom(ctx context.Context, sellerID int) (*ChatRoom, error) {
	var room ChatRoom
	path := fmt.Sprintf("/chat/room/%d", sellerID)
	if err := c.do(ctx, "chat.OpenRoom", http.MethodPost, path, nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetChatMessages fetches the full message list for a room.
func (c *Client) GetChatMessages(ctx context.Context, roomID int) ([]ChatMessage, error) {
	var resp struct {
		Messages []ChatMessage `json:"messages"`
	}
	path := fmt.Sprintf("/chat/room/%d/messages", roomID)
	if err := c.get(ctx, "chat.GetMessages", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendChatMessage posts a message to a room. A client message id is attached
// so a resend after a timeout cannot duplicate.
func (c *Client) SendChatMessage(ctx context.Context, roomID int, content string) (*ChatMessage, error) {
	req := SendMessageRequest{
		Content:         content,
		ClientMessageID: uuid.New().String(),
	}
	var msg ChatMessage
	path := fmt.Sprintf("/chat/room/%d/message", roomID)
	if err := c.do(ctx, "chat.SendMessage", http.MethodPost, path, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetUnreadCount fetches the global unread message count.
func (c *Client) GetUnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "chat.UnreadCount", "/chat/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
