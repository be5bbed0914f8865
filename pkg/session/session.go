// Package session keeps live wheels for the HTTP server.
//
// A [Session] owns one laid out [pipeline.Wheel] and serializes access to
// it. Sessions expire after a period of inactivity; every successful
// [MemoryStore.Get] extends the deadline.
//
//	store := session.NewMemoryStore(30*time.Minute, logger)
//	sess, err := store.Create(ctx, cfg)
//	err = sess.Do(func(w *pipeline.Wheel) error {
//	    _, err := w.Scroll(40)
//	    return err
//	})
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ferris/pkg/config"
	ferrors "github.com/matzehuels/ferris/pkg/errors"
	"github.com/matzehuels/ferris/pkg/pipeline"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("session expired")

	// ErrLimit is returned when the store is full.
	ErrLimit = errors.New("too many sessions")
)

// Default limits.
const (
	// DefaultTTL is the default inactivity timeout.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxSessions bounds the number of live wheels per store.
	DefaultMaxSessions = 1024
)

// Session is one live wheel.
type Session struct {
	ID        string         `json:"id"`
	Config    *config.Config `json:"-"`
	CreatedAt time.Time      `json:"created_at"`

	mu     sync.Mutex
	wheel  *pipeline.Wheel
	broken error

	deadlineMu sync.Mutex
	expiresAt  time.Time
}

// Do runs fn with exclusive access to the wheel. A fatal layout error
// breaks the session: later calls return that error without running fn.
func (s *Session) Do(fn func(w *pipeline.Wheel) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken != nil {
		return s.broken
	}
	err := fn(s.wheel)
	if err != nil && ferrors.Fatal(err) {
		s.broken = err
	}
	return err
}

// ExpiresAt returns the current expiry deadline.
func (s *Session) ExpiresAt() time.Time {
	s.deadlineMu.Lock()
	defer s.deadlineMu.Unlock()
	return s.expiresAt
}

func (s *Session) expired(now time.Time) bool {
	s.deadlineMu.Lock()
	defer s.deadlineMu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) touch(deadline time.Time) {
	s.deadlineMu.Lock()
	s.expiresAt = deadline
	s.deadlineMu.Unlock()
}

// Store is the interface for session storage backends.
type Store interface {
	// Create builds and lays out a wheel for cfg.
	Create(ctx context.Context, cfg *config.Config) (*Session, error)

	// Get returns a live session and extends its deadline.
	// Returns ErrNotFound or ErrExpired otherwise.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	logger   *log.Logger
	now      func() time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity. A non-positive ttl selects DefaultTTL.
func NewMemoryStore(ttl time.Duration, logger *log.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      DefaultMaxSessions,
		logger:   logger,
		now:      time.Now,
	}
}

// SetMaxSessions changes the session limit.
func (m *MemoryStore) SetMaxSessions(n int) {
	m.mu.Lock()
	m.max = n
	m.mu.Unlock()
}

func (m *MemoryStore) Create(_ context.Context, cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, err := pipeline.Build(cfg, m.logger)
	if err != nil {
		return nil, err
	}
	if err := w.Layout(); err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		CreatedAt: now,
		wheel:     w,
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) >= m.max {
		return nil, ErrLimit
	}
	m.sessions[s.ID] = s
	m.logger.Debug("session created", "id", s.ID, "items", cfg.Items.Count)
	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	now := m.now()
	if s.expired(now) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrExpired
	}
	s.touch(now.Add(m.ttl))
	return s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Cleanup(_ context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.logger.Debug("expired sessions removed", "count", n, "live", len(m.sessions))
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (m *MemoryStore) RunCleanup(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = m.Cleanup(ctx)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
