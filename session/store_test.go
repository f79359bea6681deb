package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xletuss/67foodstreet/api"
	"github.com/0xletuss/67foodstreet/core"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, core.ErrSessionMissing)

	want := customerSession()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, core.ErrSessionMissing)

	// Clearing twice is not an error.
	assert.NoError(t, store.Clear(ctx))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionMissing)
}

func TestFileStoreRejectsIncompleteSession(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"role":"customer"}`},
		{"invalid role", `{"token":"t","role":"root"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := NewFileStore(path).Load(context.Background())
			assert.ErrorIs(t, err, core.ErrSessionMissing)
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := customerSession()
	require.NoError(t, store.Save(ctx, s))
	s.Token = "mutated"

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"customer", "seller", "admin"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.True(t, role.Valid())
	}

	_, err := ParseRole("moderator")
	assert.True(t, core.IsValidation(err))
}

func TestFromAuthResponse(t *testing.T) {
	resp := &api.AuthResponse{
		AccessToken: "tok-9",
		Seller:      &api.Profile{ID: 3, Name: "Ben", Username: "ben"},
	}
	s, err := FromAuthResponse(resp, RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, "tok-9", s.Token)
	assert.Equal(t, 3, s.UserID)
	assert.Equal(t, "Ben", s.DisplayName)

	// Username fills in when the profile has no display name.
	resp.Seller.Name = ""
	s, err = FromAuthResponse(resp, RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, "ben", s.DisplayName)

	_, err = FromAuthResponse(&api.AuthResponse{}, RoleSeller)
	assert.Error(t, err)
}
