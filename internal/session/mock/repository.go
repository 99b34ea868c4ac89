// Package sessionmock provides a session repository for tests, with seeded
// state and injectable failures.
package sessionmock

import (
	"context"
	"sync"

	"github.com/nordcodes/session-gateway/internal/session"
)

type RepositoryOption func(*Repository)

type Repository struct {
	mu       sync.Mutex
	sessions map[string]session.Session

	tryCreateErr, isAuthenticatedErr, removeErr error
}

func WithSession(sess session.Session) RepositoryOption {
	return func(r *Repository) { r.sessions[sess.Token] = sess }
}

func WithTryCreateError(err error) RepositoryOption {
	return func(r *Repository) { r.tryCreateErr = err }
}

func WithIsAuthenticatedError(err error) RepositoryOption {
	return func(r *Repository) { r.isAuthenticatedErr = err }
}

func WithRemoveError(err error) RepositoryOption {
	return func(r *Repository) { r.removeErr = err }
}

var _ = session.Repository(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		sessions: make(map[string]session.Session),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

func (r *Repository) TryCreate(_ context.Context, sess session.Session) error {
	if r.tryCreateErr != nil {
		return r.tryCreateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sess.Token]; ok {
		return session.ErrSessionExists
	}

	r.sessions[sess.Token] = sess

	return nil
}

func (r *Repository) IsAuthenticated(_ context.Context, token string) (bool, error) {
	if r.isAuthenticatedErr != nil {
		return false, r.isAuthenticatedErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[token]

	return ok, nil
}

func (r *Repository) Remove(_ context.Context, token string) error {
	if r.removeErr != nil {
		return r.removeErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)

	return nil
}

// Count reports the number of stored sessions.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
