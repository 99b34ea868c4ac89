// Package sessionmemory implements the session repository as a sharded
// in-memory store. Each shard is a go-cache instance: Add gives the atomic
// insert-if-absent that TryCreate needs, reads expire lazily, and the
// built-in janitor sweeps expired sessions when a session duration is
// configured. Sharding by token hash keeps operations on distinct tokens
// from contending on one lock.
package sessionmemory

import (
	"context"
	"hash/fnv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nordcodes/session-gateway/internal/session"
)

const shardCount = 32

type Repository struct {
	shards [shardCount]*gocache.Cache
}

var _ = session.Repository(&Repository{})

// NewRepository builds the store. A zero sessionDuration means sessions
// never expire; a positive duration enables lazy expiry on read plus a
// background sweep.
func NewRepository(sessionDuration time.Duration) *Repository {
	expiry := time.Duration(gocache.NoExpiration)
	sweep := time.Duration(0) // no janitor
	if sessionDuration > 0 {
		expiry = sessionDuration
		sweep = sessionDuration
	}

	r := &Repository{}
	for i := range r.shards {
		r.shards[i] = gocache.New(expiry, sweep)
	}

	return r
}

func (r *Repository) TryCreate(_ context.Context, sess session.Session) error {
	if err := r.shard(sess.Token).Add(sess.Token, sess, gocache.DefaultExpiration); err != nil {
		return session.ErrSessionExists
	}

	return nil
}

func (r *Repository) IsAuthenticated(_ context.Context, token string) (bool, error) {
	_, ok := r.shard(token).Get(token)
	return ok, nil
}

func (r *Repository) Remove(_ context.Context, token string) error {
	r.shard(token).Delete(token)
	return nil
}

// Count reports the number of stored sessions. Diagnostics only; it may
// include sessions that expired but were not swept yet.
func (r *Repository) Count() int {
	n := 0
	for _, c := range r.shards {
		n += c.ItemCount()
	}

	return n
}

func (r *Repository) shard(token string) *gocache.Cache {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))

	return r.shards[h.Sum32()%shardCount]
}
