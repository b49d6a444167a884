package auth

import "context"

// Session defines the operations the rest of the application uses to talk to
// the session manager. Implemented by *Service; CLI tests substitute fakes.
type Session interface {
	// Login authenticates with username/password.
	// Failures are returned as *Error classified by Kind.
	Login(ctx context.Context, username, password string) error

	// Logout clears the session; idempotent
	Logout(ctx context.Context)

	// CheckAuthStatus reports whether a usable session exists,
	// re-establishing one from stored state when possible
	CheckAuthStatus(ctx context.Context) bool

	// FetchUserData fetches and caches the current profile; nil on failure
	FetchUserData(ctx context.Context) *UserProfile

	// RefreshAuthToken exchanges the refresh token for a new pair
	RefreshAuthToken(ctx context.Context) bool

	// HasRole checks role membership case-insensitively
	HasRole(role string) bool

	// Profile returns the cached profile, nil when logged out
	Profile() *UserProfile

	// State returns the current session state
	State() State

	// AccessToken returns the current access token, empty when logged out
	AccessToken() string
}

// Compile-time check that Service implements Session
var _ Session = (*Service)(nil)
