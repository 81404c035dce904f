package lotmap

import (
	"sync"
	"time"
)

// Session is the map state of one visitor.
type Session struct {
	Controller *Controller
	Overlay    *Overlay

	generation uint64
	seen       time.Time
}

// Sessions keeps one controller per visitor, evicting idle ones.
type Sessions struct {
	mu        sync.Mutex
	items     map[string]*Session
	ttl       time.Duration
	scope     string
	now       func() time.Time
	lastSweep time.Time
}

// NewSessions builds a store whose overlays are scoped to the given selector.
func NewSessions(ttl time.Duration, scope string) *Sessions {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Sessions{items: make(map[string]*Session), ttl: ttl, scope: scope, now: time.Now}
}

// Get returns the session for id, creating it on first use. When gen is newer
// than the generation the session last saw, its controller is rebound.
func (s *Sessions) Get(id string, gen *Generation) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	sess, ok := s.items[id]
	if !ok {
		overlay := NewOverlay(s.scope)
		sess = &Session{Overlay: overlay, Controller: NewController(nil, overlay)}
		s.items[id] = sess
	}
	sess.seen = now
	if gen != nil && sess.generation != gen.Number {
		sess.Controller.Rebind(gen.Registry)
		sess.generation = gen.Number
	}
	return sess
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl/2 {
		return
	}
	s.lastSweep = now
	for id, sess := range s.items {
		if now.Sub(sess.seen) > s.ttl {
			delete(s.items, id)
		}
	}
}
