// Package registry holds the in-memory user registry. Every write goes
// through Create or Mutate, which persist the whole registry before the
// change becomes visible to Find.
package registry

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/models"
)

// ErrUnchanged may be returned by a Mutate callback to report that the record
// needs no write. Mutate then returns the current record and a nil error.
var ErrUnchanged = errors.New("record unchanged")

// Store is the durable side of the registry.
type Store interface {
	Load(ctx context.Context) models.Users
	Save(ctx context.Context, users models.Users) error
}

// Registry maps usernames to records.
type Registry struct {
	mu    sync.Mutex
	store Store
	users models.Users
}

// Option configures Open.
type Option func(*options)

type options struct {
	policy models.ActiveSubjectPolicy
}

// WithActiveSubjectPolicy reconciles every loaded record's active subject
// with policy. Without it records are kept exactly as stored.
func WithActiveSubjectPolicy(policy models.ActiveSubjectPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// Open hydrates a registry from store. Open never writes to store.
func Open(ctx context.Context, store Store, opts ...Option) *Registry {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	users := store.Load(ctx)
	if users == nil {
		users = models.Users{}
	}
	if o.policy != "" {
		for _, u := range users {
			if u != nil {
				u.ReconcileActiveSubject(o.policy)
			}
		}
	}
	return &Registry{store: store, users: users}
}

// Create registers a new user and persists the registry.
func (r *Registry) Create(ctx context.Context, username string, role models.Role) (*models.UserRecord, error) {
	in := models.NewUser{Username: username, Role: role}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[in.Username]; ok {
		return nil, fmt.Errorf("%w: %q", common.ErrDuplicateUsername, in.Username)
	}

	rec := models.NewUserRecord(in.Username, in.Role)
	next := maps.Clone(r.users)
	next[rec.Username] = rec
	if err := r.store.Save(ctx, next); err != nil {
		return nil, err
	}
	r.users = next
	return rec.Clone(), nil
}

// Find returns a copy of the record, or false when username is unknown.
func (r *Registry) Find(username string) (*models.UserRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.users[username]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Mutate applies fn to a copy of the user's record and persists the result.
// If fn fails or the save fails the registry is left as it was.
// Username and role cannot be changed by fn.
func (r *Registry) Mutate(ctx context.Context, username string, fn func(*models.UserRecord) error) (*models.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUserNotFound, username)
	}

	work := cur.Clone()
	if err := fn(work); err != nil {
		if errors.Is(err, ErrUnchanged) {
			return cur.Clone(), nil
		}
		return nil, err
	}
	if work.Username != cur.Username || work.Role != cur.Role {
		return nil, common.ErrImmutableField
	}

	next := maps.Clone(r.users)
	next[username] = work
	if err := r.store.Save(ctx, next); err != nil {
		return nil, err
	}
	r.users = next
	return work.Clone(), nil
}

// All returns copies of every record ordered by username.
func (r *Registry) All() []*models.UserRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*models.UserRecord, 0, len(r.users))
	for _, name := range r.users.Usernames() {
		out = append(out, r.users[name].Clone())
	}
	return out
}

// Snapshot returns a deep copy of the registry.
func (r *Registry) Snapshot() models.Users {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users.Clone()
}

// Len reports the number of registered users.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
