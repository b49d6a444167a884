package auth

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v5"
)

// rolesFromToken decodes the role claim from the access token payload without
// verifying the signature (the token is our own bearer credential; we only
// mine it for role names the who-am-I response failed to provide).
// The claim may be a single string or a list; any decode failure degrades to
// an empty role set.
func rolesFromToken(token string, logger *slog.Logger) []string {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.Debug("failed to decode access token payload", "error", err)
		return nil
	}

	switch v := claims["role"].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var roles []string
		for _, elem := range v {
			if s, ok := elem.(string); ok && s != "" {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return nil
	}
}
