package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login authenticates against the role-specific endpoint. On success the
// returned token is installed on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, role string, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	path := fmt.Sprintf("/auth/%s/login", role)
	if err := c.do(ctx, "auth.Login", http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// RegisterCustomer creates a customer account and logs it in.
func (c *Client) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "auth.RegisterCustomer", http.MethodPost, "/auth/customer/register", req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// RegisterSeller creates a seller account. Seller accounts stay pending
// until an admin verifies them, so no token is installed.
func (c *Client) RegisterSeller(ctx context.Context, req RegisterSellerRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "auth.RegisterSeller", http.MethodPost, "/auth/seller/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	if err := c.get(ctx, "auth.GetProfile", "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// UpdateProfile writes profile changes and returns the server copy.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	var resp struct {
		User Profile `json:"user"`
	}
	if err := c.do(ctx, "auth.UpdateProfile", http.MethodPut, "/auth/profile", p, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
