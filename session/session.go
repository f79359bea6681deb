// Package session holds the client's record of being authenticated: the
// bearer token, the user profile and the role, persisted across runs by a
// pluggable Store.
package session

import (
	"fmt"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// Role is the closed set of account types. Role-based branching goes through
// exhaustive switches at the gate boundary instead of ad hoc string checks.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a role tag read from persisted state or user input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q: %w", s, core.ErrValidation)
	}
}

// Valid reports whether the role is one of the three known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath returns the landing page for the role after login.
func (r Role) DashboardPath() string {
	switch r {
	case RoleCustomer:
		return "/customer/dashboard"
	case RoleSeller:
		return "/seller/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

// Session is the persisted authentication state.
type Session struct {
	Token       string      `json:"token"`
	UserID      int         `json:"userId"`
	Role        Role        `json:"role"`
	DisplayName string      `json:"displayName"`
	Profile     api.Profile `json:"profile"`
}

// FromAuthResponse builds a session out of a login/registration response.
func FromAuthResponse(resp *api.AuthResponse, role Role) (*Session, error) {
	profile := resp.UserProfile()
	if resp.AccessToken == "" || profile == nil {
		return nil, core.NewClientError("session.FromAuthResponse", "auth", core.ErrUnauthorized)
	}
	name := profile.Name
	if name == "" {
		name = profile.Username
	}
	return &Session{
		Token:       resp.AccessToken,
		UserID:      profile.ID,
		Role:        role,
		DisplayName: name,
		Profile:     *profile,
	}, nil
}
