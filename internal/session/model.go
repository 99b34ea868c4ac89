package session

import "time"

// Action is the operation a caller requests against a token.
type Action string

const (
	ActionLogin  Action = "LOGIN"
	ActionAction Action = "ACTION"
	ActionLogout Action = "LOGOUT"
)

// ParseAction maps the raw form parameter onto an Action. The zero value and
// anything outside the three known actions is rejected.
func ParseAction(raw string) (Action, bool) {
	switch a := Action(raw); a {
	case ActionLogin, ActionAction, ActionLogout:
		return a, true
	default:
		return "", false
	}
}

// Session is the authenticated state of exactly one token. A token without a
// Session record is absent; there is no intermediate persisted state.
type Session struct {
	Token     string
	CreatedAt time.Time

	// Expiry is zero when sessions never expire (the default policy).
	Expiry time.Time
}
