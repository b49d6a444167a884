package storage

import (
	"context"
)

// AuthStorage defines the durable session store on the client side.
// It holds exactly two kinds of records: the current token pair and the
// cached user profile. Both survive process restarts and are removed
// together on logout.
type AuthStorage interface {
	// SaveAuth stores the token pair write-through (overwrites any previous pair)
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored token pair.
	// Returns ErrAuthNotFound if no session is stored.
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes the stored token pair. Deleting a missing
	// record is not an error (logout is idempotent).
	DeleteAuth(ctx context.Context) error

	// SaveProfile stores the cached user profile
	SaveProfile(ctx context.Context, profile *ProfileData) error

	// GetProfile retrieves the cached user profile.
	// Returns ErrProfileNotFound if no profile is cached.
	GetProfile(ctx context.Context) (*ProfileData, error)

	// DeleteProfile removes the cached profile; missing record is not an error
	DeleteProfile(ctx context.Context) error

	// Clear removes both the token pair and the cached profile (full logout)
	Clear(ctx context.Context) error
}

// AuthData represents the persisted session: the two opaque bearer tokens
// plus the identity they were issued for. Tokens are stored as-is; they are
// bearer credentials the backend issued, not secrets we derived.
type AuthData struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ProfileData represents the cached user profile as stored on disk.
// Derived data: it can always be re-fetched from the backend.
type ProfileData struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	LoginMethod string   `json:"login_method"`
	Roles       []string `json:"roles"`
}
