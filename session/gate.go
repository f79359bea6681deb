package session

import (
	"context"
	"errors"
	"sync"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

// LoginPath is where the gate sends unauthenticated users.
const LoginPath = "/auth/login"

// Gate enforces role access per view and owns session teardown. It wires
// itself into the api client's unauthorized hook so a 401 from any
// authenticated endpoint clears the stored session and navigates to the
// login page exactly once.
type Gate struct {
	store     Store
	client    *api.Client
	navigator core.Navigator
	logger    core.Logger

	mu       sync.Mutex
	tornDown bool
}

// NewGate builds the gate and installs the unauthorized hook on the client.
func NewGate(store Store, client *api.Client, nav core.Navigator, logger core.Logger) *Gate {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	g := &Gate{
		store:     store,
		client:    client,
		navigator: nav,
		logger:    logger,
	}
	client.SetUnauthorizedHook(func() {
		g.teardown(context.Background())
	})
	return g
}

// Establish saves a fresh session after login/registration and arms the
// client with its token.
func (g *Gate) Establish(ctx context.Context, s *Session) error {
	if err := g.store.Save(ctx, s); err != nil {
		return core.NewClientError("session.Establish", "storage", err)
	}
	g.client.SetToken(s.Token)
	g.mu.Lock()
	g.tornDown = false
	g.mu.Unlock()
	g.logger.Info("Session established", map[string]interface{}{
		"user_id": s.UserID,
		"role":    string(s.Role),
	})
	return nil
}

// Require loads the session and checks it carries the required role. The
// protected view proceeds only on a nil error; otherwise the caller has
// already been redirected to login.
func (g *Gate) Require(ctx context.Context, required Role) (*Session, error) {
	s, err := g.store.Load(ctx)
	if err != nil {
		if errors.Is(err, core.ErrSessionMissing) {
			g.navigator.Navigate(LoginPath)
			return nil, core.NewClientError("session.Require", "auth", core.ErrUnauthorized)
		}
		return nil, core.NewClientError("session.Require", "storage", err)
	}

	switch s.Role {
	case RoleCustomer, RoleSeller, RoleAdmin:
		if s.Role != required {
			g.logger.Warn("Role mismatch on protected view", map[string]interface{}{
				"required": string(required),
				"actual":   string(s.Role),
			})
			g.navigator.Navigate(LoginPath)
			return nil, core.NewClientError("session.Require", "auth", core.ErrForbidden)
		}
	default:
		// Persisted state from an old release; treat as logged out.
		_ = g.store.Clear(ctx)
		g.navigator.Navigate(LoginPath)
		return nil, core.NewClientError("session.Require", "auth", core.ErrUnauthorized)
	}

	g.client.SetToken(s.Token)
	return s, nil
}

// RedirectIfAuthenticated is the login/register page behavior: a valid
// session skips the form and lands on the role dashboard. Returns true when
// a redirect was issued.
func (g *Gate) RedirectIfAuthenticated(ctx context.Context) bool {
	s, err := g.store.Load(ctx)
	if err != nil {
		return false
	}
	g.navigator.Navigate(s.Role.DashboardPath())
	return true
}

// Logout clears the session deliberately (user action).
func (g *Gate) Logout(ctx context.Context) {
	g.teardown(ctx)
}

// teardown clears stored state, drops the client token and navigates to the
// login page. Runs at most once per established session, so concurrent 401s
// from parallel requests cannot double-redirect.
func (g *Gate) teardown(ctx context.Context) {
	g.mu.Lock()
	if g.tornDown {
		g.mu.Unlock()
		return
	}
	g.tornDown = true
	g.mu.Unlock()

	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error("Failed to clear session storage", map[string]interface{}{
			"error": err.Error(),
		})
	}
	g.client.ClearToken()
	g.logger.Info("Session destroyed", nil)
	g.navigator.Navigate(LoginPath)
}
