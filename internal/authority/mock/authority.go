// Package authoritymock provides a programmable stand-in for the external
// authority, with call counters for asserting how often each endpoint was
// consulted.
package authoritymock

import (
	"context"
	"sync/atomic"

	"github.com/nordcodes/session-gateway/internal/authority"
)

type Option func(*Authority)

type Authority struct {
	authenticateResult bool
	authorizeResult    bool

	authCalls   atomic.Int64
	actionCalls atomic.Int64
}

var _ = authority.Authority(&Authority{})

func WithAuthenticateResult(approve bool) Option {
	return func(a *Authority) { a.authenticateResult = approve }
}

func WithAuthorizeActionResult(approve bool) Option {
	return func(a *Authority) { a.authorizeResult = approve }
}

// New returns an authority that approves everything unless configured
// otherwise.
func New(opts ...Option) *Authority {
	a := &Authority{
		authenticateResult: true,
		authorizeResult:    true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

func (a *Authority) Authenticate(_ context.Context, _ string) bool {
	a.authCalls.Add(1)
	return a.authenticateResult
}

func (a *Authority) AuthorizeAction(_ context.Context, _ string) bool {
	a.actionCalls.Add(1)
	return a.authorizeResult
}

// AuthCalls reports how many times Authenticate was invoked.
func (a *Authority) AuthCalls() int64 { return a.authCalls.Load() }

// ActionCalls reports how many times AuthorizeAction was invoked.
func (a *Authority) ActionCalls() int64 { return a.actionCalls.Load() }
