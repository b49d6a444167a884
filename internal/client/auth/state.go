package auth

// State describes the session lifecycle. The session starts in StateUnknown,
// moves through StateChecking while a login/refresh/profile probe is in
// flight, and settles in StateAuthenticated or StateUnauthenticated.
type State int

const (
	// StateUnknown is the initial state before any check has run
	StateUnknown State = iota

	// StateChecking means a session probe or silent refresh is in flight
	StateChecking

	// StateAuthenticated means a valid session is established
	StateAuthenticated

	// StateUnauthenticated means there is no usable session
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}
