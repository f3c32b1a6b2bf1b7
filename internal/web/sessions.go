package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/bridge"
)

// SessionCookie names the cookie carrying the console session id.
const SessionCookie = "console_session"

// DefaultSessionTTL is how long an idle console session is kept.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	bridge   *bridge.Bridge
	lastSeen time.Time
}

// Sessions gives every browser its own bridge.
type Sessions struct {
	res bridge.Resource
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessions creates a session table whose bridges talk to res.
func NewSessions(res bridge.Resource, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		res:      res,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Lookup returns the bridge for id and marks it as used.
func (s *Sessions) Lookup(id string) (*bridge.Bridge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.now().Sub(sess.lastSeen) > s.ttl {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.bridge, true
}

// Start creates a new session and returns its id.
func (s *Sessions) Start() (string, *bridge.Bridge) {
	id := uuid.NewString()
	b := bridge.New(s.res, slog.Default().With("session", id))

	s.mu.Lock()
	s.sessions[id] = &session{bridge: b, lastSeen: s.now()}
	s.mu.Unlock()

	slog.Info("console session started", "session", id)
	return id, b
}

// Prune drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if s.now().Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run prunes idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Prune(); n > 0 {
				slog.Info("pruned idle console sessions", "count", n)
			}
		}
	}
}
