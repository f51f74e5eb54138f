package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore keeps storefront sessions in memory, keyed by the session cookie value
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	create   func(id string) *Session
	now      func() time.Time
	logger   *zap.Logger
}

type storedSession struct {
	session  *Session
	lastSeen time.Time
}

// NewSessionStore creates a store; create builds new sessions (usually Storefront.NewSession)
func NewSessionStore(ttl time.Duration, create func(id string) *Session, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if create == nil {
		create = func(id string) *Session { return NewSession(id, time.Now()) }
	}
	return &SessionStore{
		sessions: make(map[string]*storedSession),
		ttl:      ttl,
		create:   create,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns a live session and refreshes its expiry
func (st *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.ttl > 0 && now.Sub(entry.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	entry.lastSeen = now
	return entry.session, true
}

// GetOrCreate returns the session for id, creating one with a new id when it is unknown
// or expired. created reports whether a new session was made.
func (st *SessionStore) GetOrCreate(id string) (session *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Create starts a new session with a random id
func (st *SessionStore) Create() *Session {
	s := st.create(uuid.NewString())

	st.mu.Lock()
	st.sessions[s.ID] = &storedSession{session: s, lastSeen: st.now()}
	st.mu.Unlock()
	return s
}

// Len returns the number of stored sessions
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were dropped
func (st *SessionStore) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	removed := 0
	for id, entry := range st.sessions {
		if now.Sub(entry.lastSeen) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (st *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				st.logger.Info("expired sessions swept", zap.Int("removed", n), zap.Int("remaining", st.Len()))
			}
		}
	}
}
