package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Admin namespace: user management and seller verification.

// ListUsers fetches platform users, optionally filtered by user type.
func (c *Client) ListUsers(ctx context.Context, userType string) ([]AdminUser, error) {
	query := url.Values{}
	if userType != "" {
		query.Set("type", userType)
	}
	var resp struct {
		Users []AdminUser `json:"users"`
	}
	if err := c.get(ctx, "admin.ListUsers", "/admin/users", query, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// VerifySeller approves a pending seller account.
func (c *Client) VerifySeller(ctx context.Context, sellerID int) error {
	path := fmt.Sprintf("/admin/sellers/%d/verify", sellerID)
	return c.do(ctx, "admin.VerifySeller", http.MethodPut, path, nil, nil)
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	path := fmt.Sprintf("/admin/users/%d", userID)
	return c.do(ctx, "admin.DeleteUser", http.MethodDelete, path, nil, nil)
}
