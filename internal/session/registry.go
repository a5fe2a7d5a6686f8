// Package session ties each signed-in session to its own budget store.
// A store is created when a session starts and dropped when the session ends
// or expires; nothing in it outlives the session.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"pocketbudget/internal/logger"
	"pocketbudget/internal/store"
	"pocketbudget/internal/uuid"
)

// Session is a live sign-in together with its budget store.
type Session struct {
	ID        string
	UserID    string
	Store     *store.Store
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Registry tracks live sessions. It is safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	seed     bool

	now   func() time.Time
	newID func() string
	log   *zap.SugaredLogger
}

// Option configures a Registry.
type Option func(*Registry)

// WithDemoData seeds every new session's store with the demo budgets.
func WithDemoData(enabled bool) Option {
	return func(r *Registry) { r.seed = enabled }
}

// WithClock overrides the time source used for expiry.
func WithClock(fn func() time.Time) Option {
	return func(r *Registry) { r.now = fn }
}

// WithIDGenerator overrides the session id source.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// NewRegistry creates a registry whose sessions live for ttl.
func NewRegistry(ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.New,
		log:      logger.Named("session"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start opens a session for userID with a fresh store.
func (r *Registry) Start(userID string) *Session {
	st := store.New()
	if r.seed {
		store.SeedDemo(st)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	id := r.newID()
	for r.sessions[id] != nil {
		id = r.newID()
	}
	sess := &Session{
		ID:        id,
		UserID:    userID,
		Store:     st,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	r.sessions[id] = sess
	r.log.Debugw("session started", "session_id", id, "user_id", userID)
	return sess
}

// Get returns the live session with the given id. Expired sessions are
// removed and reported as missing.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if !r.now().Before(sess.ExpiresAt) {
		delete(r.sessions, id)
		return nil, false
	}
	return sess, true
}

// Store returns the budget store of a live session.
func (r *Registry) Store(id string) (*store.Store, bool) {
	sess, ok := r.Get(id)
	if !ok {
		return nil, false
	}
	return sess.Store, true
}

// End closes a session and discards its store.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	r.log.Debugw("session ended", "session_id", id)
	return true
}

// Sweep removes every expired session and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, sess := range r.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked sessions, including expired ones not yet swept.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Infow("expired sessions swept", "count", n, "remaining", r.Len())
			}
		case <-ctx.Done():
			return
		}
	}
}
