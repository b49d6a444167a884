// Package guard decides whether the current session may access a protected
// area. The decision is pure data (allow / pending / redirect); executing a
// redirect is the caller's job, which keeps the rules independently testable.
package guard

import (
	"strings"

	"github.com/pixelforge/backoffice/internal/client/auth"
)

// Navigation targets for denied access
const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision is the outcome of an access check
type Decision struct {
	// RedirectTo is the path to send the user to; empty when access is
	// allowed or still pending
	RedirectTo string

	// Pending means the session state is not resolved yet; render a
	// loading placeholder, never protected content
	Pending bool
}

// Allowed reports whether protected content may be rendered
func (d Decision) Allowed() bool {
	return !d.Pending && d.RedirectTo == ""
}

// Decide applies the access rules:
//   - unresolved session state → pending
//   - unauthenticated → redirect to login
//   - empty required set → any authenticated user passes
//   - otherwise the user needs ANY one of the required roles (logical OR),
//     compared case-insensitively; a requirement of "Admin" is also satisfied
//     by any held role containing "admin" as a substring, tolerating
//     backend role-name drift
//   - no match → redirect to the unauthorized page
func Decide(state auth.State, held, required []string) Decision {
	switch state {
	case auth.StateUnknown, auth.StateChecking:
		return Decision{Pending: true}
	case auth.StateAuthenticated:
		// fall through to role matching
	default:
		return Decision{RedirectTo: LoginPath}
	}

	if len(required) == 0 {
		return Decision{}
	}

	for _, req := range required {
		for _, role := range held {
			if roleSatisfies(role, req) {
				return Decision{}
			}
		}
	}
	return Decision{RedirectTo: UnauthorizedPath}
}

// roleSatisfies reports whether a held role satisfies a required one
func roleSatisfies(held, required string) bool {
	if strings.EqualFold(held, required) {
		return true
	}
	// Бэкенд переименовывал административные роли не один раз
	// (Admin, SuperAdmin, AdminSystem), поэтому требование "Admin"
	// закрывается любой ролью с "admin" в имени.
	if strings.EqualFold(required, "admin") &&
		strings.Contains(strings.ToLower(held), "admin") {
		return true
	}
	return false
}
