// Package session tracks which tokens hold an authenticated session and
// drives the LOGIN/ACTION/LOGOUT protocol against the external authority.
package session

import (
	"context"
	"errors"
	"time"

	slogctx "github.com/veqryn/slog-context"

	"github.com/nordcodes/session-gateway/internal/authority"
	"github.com/nordcodes/session-gateway/internal/config"
	"github.com/nordcodes/session-gateway/internal/serviceerr"
	"github.com/nordcodes/session-gateway/internal/token"
)

type Manager struct {
	sessions  Repository
	authority authority.Authority

	sessionDuration time.Duration
}

func NewManager(cfg *config.Gateway, sessions Repository, auth authority.Authority) (*Manager, error) {
	if sessions == nil {
		return nil, errors.New("nil session repository")
	}

	if auth == nil {
		return nil, errors.New("nil authority client")
	}

	return &Manager{
		sessions:        sessions,
		authority:       auth,
		sessionDuration: cfg.SessionDuration,
	}, nil
}

// Login drives the ABSENT -> AUTHENTICATED transition: local token format
// check, one /auth round trip, then the atomic commit. The external call
// happens before the store mutation and never under a held lock; the commit
// is the single serialization point between concurrent LOGINs for the same
// token, and the loser has mutated nothing.
func (m *Manager) Login(ctx context.Context, tok string) error {
	if !token.Valid(tok) {
		slogctx.Info(ctx, "Rejected malformed token", "token", Redact(tok))
		return serviceerr.ErrInvalidToken
	}

	// An already-authenticated token is a conflict and must not reach the
	// external service.
	authenticated, err := m.sessions.IsAuthenticated(ctx, tok)
	if err != nil {
		return m.storeFailure(ctx, err)
	}

	if authenticated {
		return serviceerr.ErrConflict
	}

	if !m.authority.Authenticate(ctx, tok) {
		return serviceerr.ErrAuthenticationDenied
	}

	sess := Session{Token: tok, CreatedAt: time.Now()}
	if m.sessionDuration > 0 {
		sess.Expiry = sess.CreatedAt.Add(m.sessionDuration)
	}

	if err := m.sessions.TryCreate(ctx, sess); err != nil {
		if errors.Is(err, ErrSessionExists) {
			// A concurrent LOGIN won the race between our fast-path read
			// and the commit.
			return serviceerr.ErrConflict
		}

		return m.storeFailure(ctx, err)
	}

	slogctx.Info(ctx, "Session created", "token", Redact(tok))

	return nil
}

// Action authorizes one action for an authenticated token. The session is
// not mutated either way, and /doAction is consulted only when a session
// exists.
func (m *Manager) Action(ctx context.Context, tok string) error {
	authenticated, err := m.sessions.IsAuthenticated(ctx, tok)
	if err != nil {
		return m.storeFailure(ctx, err)
	}

	if !authenticated {
		slogctx.Info(ctx, "Action without an active session", "token", Redact(tok))
		return serviceerr.ErrNoSession
	}

	if !m.authority.AuthorizeAction(ctx, tok) {
		return serviceerr.ErrAuthorizationDenied
	}

	return nil
}

// Logout removes the session for the token. It is idempotent: logging out a
// token with no session is a success, and the external service is never
// consulted.
func (m *Manager) Logout(ctx context.Context, tok string) error {
	if err := m.sessions.Remove(ctx, tok); err != nil {
		return m.storeFailure(ctx, err)
	}

	slogctx.Info(ctx, "Session removed", "token", Redact(tok))

	return nil
}

// storeFailure logs the underlying store error and degrades it to the
// opaque internal failure. Store errors are never expected from the
// in-memory repository.
func (m *Manager) storeFailure(ctx context.Context, err error) error {
	slogctx.Error(ctx, "Session store failure", "error", err)
	return serviceerr.ErrUnknown
}

// Redact shortens a token for logging. Tokens are credentials, so only a
// prefix ever reaches the logs.
func Redact(tok string) string {
	const visible = 8
	if len(tok) <= visible {
		return tok
	}

	return tok[:visible] + "..."
}
