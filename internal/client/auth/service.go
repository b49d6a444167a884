package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/pixelforge/backoffice/internal/client/api"
	"github.com/pixelforge/backoffice/internal/client/storage"
	"github.com/pixelforge/backoffice/internal/validation"
	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// Service is the single source of truth for "who is logged in and with what
// privileges". One instance per process; constructed once at startup and
// passed down explicitly. It owns the token pair and the cached profile and
// keeps the persisted copy write-through.
//
// Callers must not run Login concurrently with RefreshAuthToken on the same
// instance; concurrent refreshes themselves are coalesced.
type Service struct {
	api     *api.Client
	store   storage.AuthStorage
	logger  *slog.Logger
	sf      singleflight.Group
	mu      sync.RWMutex
	state   State
	access  string
	refresh string
	profile *UserProfile
}

// Compile-time check that Service implements api.TokenSource
var _ api.TokenSource = (*Service)(nil)

// NewService creates the session service and restores any persisted session
// so a new process resumes where the previous one left off.
func NewService(ctx context.Context, apiClient *api.Client, store storage.AuthStorage, logger *slog.Logger) *Service {
	s := &Service{
		api:    apiClient,
		store:  store,
		logger: logger,
		state:  StateUnknown,
	}

	// Восстанавливаем сохраненную сессию (аналог перезагрузки страницы)
	if auth, err := store.GetAuth(ctx); err == nil {
		s.access = auth.AccessToken
		s.refresh = auth.RefreshToken
	} else if !errors.Is(err, storage.ErrAuthNotFound) {
		logger.Warn("failed to restore stored session", "error", err)
	}
	if profile, err := store.GetProfile(ctx); err == nil {
		s.profile = profileFromStorage(profile)
	} else if !errors.Is(err, storage.ErrProfileNotFound) {
		logger.Warn("failed to restore cached profile", "error", err)
	}

	return s
}

// Login authenticates the employee. On success the new token pair is visible
// to AccessToken() before Login returns and is persisted write-through.
// Failures come back as *Error classified by the §7-style taxonomy; Login
// never panics and never returns a half-established session.
func (s *Service) Login(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return &Error{Kind: KindInvalidCredentials, Msg: err.Error(), cause: err}
	}
	if err := validation.ValidatePassword(password); err != nil {
		return &Error{Kind: KindInvalidCredentials, Msg: err.Error(), cause: err}
	}

	s.setState(StateChecking)

	// Credentials живут только в рамках этого запроса
	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.setState(StateUnauthenticated)
		authErr := classifyLoginError(err)
		s.logger.Warn("login failed", "username", username, "kind", authErr.Kind, "error", err)
		return authErr
	}

	profile := profileFromInfo(&resp.User, resp.Token, s.logger)

	s.mu.Lock()
	s.access = resp.Token
	s.refresh = resp.RefreshToken
	s.profile = profile
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.persistSession(ctx, profile)
	s.logger.Info("login successful", "username", profile.Username, "roles", profile.Roles)
	return nil
}

// FetchUserData calls the who-am-I endpoint with the current access token.
// Without a token it returns nil immediately, without a network call.
// Any network or decode failure also yields nil; this operation never
// surfaces an error to the caller.
func (s *Service) FetchUserData(ctx context.Context) *UserProfile {
	if s.AccessToken() == "" {
		return nil
	}

	info, err := s.api.GetUserInfo(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch user data", "error", err)
		return nil
	}

	profile := profileFromInfo(info, s.AccessToken(), s.logger)

	s.mu.Lock()
	s.profile = profile
	s.state = StateAuthenticated
	s.mu.Unlock()

	if err := s.store.SaveProfile(ctx, profile.toStorage()); err != nil {
		s.logger.Warn("failed to cache user profile", "error", err)
	}

	return profile.clone()
}

// RefreshAuthToken exchanges the refresh token for a new pair. Concurrent
// callers are coalesced into a single network call and observe the same
// result. A rejection by the backend logs the session out entirely
// (fail-closed); an unreachable backend keeps the tokens so a transient
// outage does not force re-login.
func (s *Service) RefreshAuthToken(ctx context.Context) bool {
	ok, _, _ := s.sf.Do("refresh", func() (any, error) {
		return s.doRefresh(ctx), nil
	})
	return ok.(bool)
}

func (s *Service) doRefresh(ctx context.Context) bool {
	s.mu.Lock()
	refreshToken := s.refresh
	if refreshToken == "" {
		s.state = StateUnauthenticated
		s.mu.Unlock()
		return false
	}
	prevState := s.state
	s.state = StateChecking
	s.mu.Unlock()

	resp, err := s.api.RefreshToken(ctx, refreshToken)
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			// Бэкенд отверг refresh token: сессия закончилась
			s.logger.Warn("refresh token rejected, logging out", "status", httpErr.StatusCode)
			s.Logout(ctx)
			return false
		}
		// Сеть недоступна: сохраняем токены, сессия может пережить сбой
		s.logger.Warn("refresh endpoint unreachable, keeping session", "error", err)
		s.setState(prevState)
		return false
	}

	s.mu.Lock()
	s.access = resp.Token
	s.refresh = resp.RefreshToken
	s.state = StateAuthenticated
	profile := s.profile
	s.mu.Unlock()

	s.persistSession(ctx, profile)
	s.logger.Debug("access token refreshed")
	return true
}

// CheckAuthStatus reports whether a usable session exists, establishing one
// from stored state when possible. A cached profile short-circuits; otherwise
// the profile fetch runs before the refresh so a still-valid access token is
// not wasted on an unnecessary refresh round-trip.
func (s *Service) CheckAuthStatus(ctx context.Context) bool {
	s.mu.Lock()
	if s.profile != nil {
		s.state = StateAuthenticated
		s.mu.Unlock()
		return true
	}
	s.state = StateChecking
	s.mu.Unlock()

	if s.FetchUserData(ctx) != nil {
		return true
	}

	if s.RefreshAuthToken(ctx) {
		// Токены обновлены; профиль добираем отдельно, его отсутствие
		// не отменяет установленную сессию
		s.FetchUserData(ctx)
		return true
	}

	s.setState(StateUnauthenticated)
	return false
}

// HasRole reports whether the cached profile holds the role,
// compared case-insensitively. False when no profile is cached.
func (s *Service) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return false
	}
	for _, held := range s.profile.Roles {
		if strings.EqualFold(held, role) {
			return true
		}
	}
	return false
}

// Logout clears the in-memory session and the persisted copy.
// Safe to call repeatedly.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.profile = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear stored session", "error", err)
	}
}

// AccessToken returns the current access token; pure accessor
func (s *Service) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

// Profile returns a copy of the cached profile, nil when logged out
func (s *Service) Profile() *UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.clone()
}

// State returns the current session state
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// EnsureAuthenticated implements api.TokenSource
func (s *Service) EnsureAuthenticated(ctx context.Context) bool {
	return s.CheckAuthStatus(ctx)
}

// Refresh implements api.TokenSource
func (s *Service) Refresh(ctx context.Context) bool {
	return s.RefreshAuthToken(ctx)
}

// ForceLogout implements api.TokenSource
func (s *Service) ForceLogout(ctx context.Context) {
	s.Logout(ctx)
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// persistSession writes the current tokens (and profile, when present)
// through to storage
func (s *Service) persistSession(ctx context.Context, profile *UserProfile) {
	s.mu.RLock()
	auth := &storage.AuthData{
		AccessToken:  s.access,
		RefreshToken: s.refresh,
	}
	if profile != nil {
		auth.Username = profile.Username
		auth.UserID = profile.UserID
	}
	s.mu.RUnlock()

	if err := s.store.SaveAuth(ctx, auth); err != nil {
		s.logger.Warn("failed to persist tokens", "error", err)
	}
	if profile != nil {
		if err := s.store.SaveProfile(ctx, profile.toStorage()); err != nil {
			s.logger.Warn("failed to persist profile", "error", err)
		}
	}
}
