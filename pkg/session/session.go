// Package session tracks live widget instances for the HTTP server.
//
// Each instance owns a [slider.Controller] and expires after a period of
// inactivity. The controller is not safe for concurrent use, so callers
// go through [Session.Do], which serializes access.
//
// # Usage
//
//	store := session.NewMemoryStore(1000)
//	sess := session.New(widget, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	sess.Do(func(c *slider.Controller) {
//	    frame, ok = c.PointerMove(p)
//	})
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/arcslider/pkg/slider"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when an instance does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when an instance has exceeded its idle TTL.
	ErrExpired = errors.New("expired")

	// ErrFull is returned by Set when the store is at capacity.
	ErrFull = errors.New("too many instances")
)

// DefaultTTL is the default idle lifetime of an instance.
const DefaultTTL = 30 * time.Minute

// Session is one live widget instance.
type Session struct {
	ID        string        `json:"id"`
	Widget    slider.Widget `json:"widget"`
	CreatedAt time.Time     `json:"created_at"`

	mu         sync.Mutex
	controller *slider.Controller
	ttl        time.Duration
	expiresAt  time.Time
}

// New creates an instance with a random UUID and a fresh controller.
func New(w slider.Widget, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	w = w.Normalized()
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		Widget:     w,
		CreatedAt:  now,
		controller: slider.NewController(w),
		ttl:        ttl,
		expiresAt:  now.Add(ttl),
	}
}

// Do runs fn with exclusive access to the controller and extends the
// instance's lifetime.
func (s *Session) Do(fn func(c *slider.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	fn(s.controller)
}

// ExpiresAt returns when the instance expires unless touched again.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired returns true if the instance has been idle past its TTL.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// Store is the interface for instance storage.
type Store interface {
	// Get retrieves an instance by ID.
	// Returns ErrNotFound or ErrExpired when it is not available.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores an instance.
	Set(ctx context.Context, s *Session) error

	// Delete removes an instance. Deleting a missing instance is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired instances and returns their IDs.
	Cleanup(ctx context.Context) ([]string, error)

	// Len returns the number of stored instances, expired or not.
	Len() int
}
