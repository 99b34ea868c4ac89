package session

import (
	"context"
	"errors"
)

// ErrSessionExists is reported by TryCreate when a session for the token is
// already present. It decides the winner between two concurrent LOGINs.
var ErrSessionExists = errors.New("session already exists")

// Repository is a concurrent store of authenticated sessions keyed by token.
//
// All operations are linearizable with respect to each other per token, and
// operations on distinct tokens must not block one another.
type Repository interface {
	// TryCreate atomically inserts the session if and only if no session
	// exists for its token, and returns ErrSessionExists otherwise.
	TryCreate(ctx context.Context, sess Session) error

	// IsAuthenticated is an atomic point-in-time read.
	IsAuthenticated(ctx context.Context, token string) (bool, error)

	// Remove deletes the session for the token. Removing an absent token is
	// a no-op, not an error.
	Remove(ctx context.Context, token string) error
}
