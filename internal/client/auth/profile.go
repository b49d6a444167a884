package auth

import (
	"log/slog"

	"github.com/pixelforge/backoffice/internal/client/storage"
	pkgapi "github.com/pixelforge/backoffice/pkg/api"
)

// UserProfile is the derived identity of the logged-in employee. It is always
// reconstructed from backend responses (or the access token payload), never
// authoritative on its own.
type UserProfile struct {
	UserID      string
	Username    string
	Email       string
	DisplayName string
	LoginMethod string
	Roles       []string
}

// profileFromInfo normalizes a backend user payload into a UserProfile.
// Role source priority: the role-field variant the response carried, then the
// role claim decoded from the access token. The path taken is logged so
// backend field drift stays observable.
func profileFromInfo(info *pkgapi.UserInfoResponse, accessToken string, logger *slog.Logger) *UserProfile {
	profile := &UserProfile{
		UserID:      info.UserID,
		Username:    info.Username,
		Email:       info.Email,
		DisplayName: info.DisplayName,
		LoginMethod: info.LoginMethod,
		Roles:       info.Roles,
	}

	if info.RolesField != "" {
		logger.Debug("roles extracted from response field", "field", info.RolesField, "count", len(info.Roles))
		return profile
	}

	profile.Roles = rolesFromToken(accessToken, logger)
	if len(profile.Roles) > 0 {
		logger.Debug("roles decoded from access token claim", "count", len(profile.Roles))
	} else {
		logger.Warn("no roles found in response or token, role checks will fail",
			"username", info.Username)
	}
	return profile
}

// toStorage converts the profile to its persisted form
func (p *UserProfile) toStorage() *storage.ProfileData {
	return &storage.ProfileData{
		UserID:      p.UserID,
		Username:    p.Username,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		LoginMethod: p.LoginMethod,
		Roles:       p.Roles,
	}
}

// profileFromStorage restores a profile from its persisted form
func profileFromStorage(data *storage.ProfileData) *UserProfile {
	return &UserProfile{
		UserID:      data.UserID,
		Username:    data.Username,
		Email:       data.Email,
		DisplayName: data.DisplayName,
		LoginMethod: data.LoginMethod,
		Roles:       data.Roles,
	}
}

// clone returns a copy so callers cannot mutate the cached profile
func (p *UserProfile) clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Roles = append([]string(nil), p.Roles...)
	return &cp
}
