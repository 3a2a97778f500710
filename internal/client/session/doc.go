// Package session owns the client side of an authenticated session: the
// single persisted bearer token (TokenStore), the display-only claims decoded
// from it (Decoder) and the gate that admits or ejects the user on entry to a
// session-bound view (Guard).
//
// Navigation is never performed here. Guard and the auth flow report what
// happened through Event values and errors; the presentation layer decides
// which view to show.
package session

// Event is a navigation-relevant outcome reported by the core.
type Event int

const (
	// EventNone means the caller should stay where it is.
	EventNone Event = iota
	// EventAuthSucceeded means a token was stored; go to the authenticated area.
	EventAuthSucceeded
	// EventSessionEnded means the token is gone; go to the anonymous view.
	EventSessionEnded
)

func (e Event) String() string {
	switch e {
	case EventAuthSucceeded:
		return "auth_succeeded"
	case EventSessionEnded:
		return "session_ended"
	default:
		return "none"
	}
}
