//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_session_store.go -package=mocks
package session

import (
	"log/slog"
	"sync"
	"time"

	"support-bot/domain"
)

type IStore interface {
	Update(id string, fn func(*Context))
	Peek(id string) (Context, bool)
	Sweep() int
	Len() int
}

// Store maps sessionId to its Context. A coarse lock guards the map,
// a per-session lock serializes turns of the same session; turns of
// different sessions proceed in parallel.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*entry
	ttl        time.Duration
	historyCap int
	log        *slog.Logger
}

type entry struct {
	mu  sync.Mutex
	ctx *Context
}

func NewStore(ttl time.Duration, historyCap int, log *slog.Logger) *Store {
	return &Store{
		sessions:   make(map[string]*entry),
		ttl:        ttl,
		historyCap: historyCap,
		log:        log,
	}
}

// HistoryCap returns the configured per-session history bound.
func (s *Store) HistoryCap() int {
	return s.historyCap
}

// Update runs fn with exclusive ownership of the session's context,
// creating it on first use. A context idle beyond the TTL is replaced
// by a fresh one before fn runs: expiry is a new beginning, not an
// error. LastActiveAt is refreshed after fn returns.
func (s *Store) Update(id string, fn func(*Context)) {
	e := s.lockEntry(id)
	defer e.mu.Unlock()

	now := time.Now().UTC()
	if s.expired(e.ctx, now) {
		s.log.Debug("Session expired, starting fresh", "session", id)
		e.ctx = newContext(id, now)
	}
	fn(e.ctx)
	e.ctx.LastActiveAt = now
}

// Peek returns a snapshot copy of the session context, if present
// and not expired. Intended for diagnostics and tests.
func (s *Store) Peek(id string) (Context, bool) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.RUnlock()
		return Context{}, false
	}
	e.mu.Lock()
	s.mu.RUnlock()
	defer e.mu.Unlock()
	if s.expired(e.ctx, time.Now().UTC()) {
		return Context{}, false
	}
	snapshot := *e.ctx
	snapshot.History = append([]domain.Turn(nil), e.ctx.History...)
	snapshot.Entities = e.ctx.Entities.Merge(nil)
	return snapshot, true
}

// Sweep evicts every expired session and returns how many were
// removed. Called periodically by the janitor worker.
func (s *Store) Sweep() int {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		dead := s.expired(e.ctx, now)
		e.mu.Unlock()
		if dead {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug("Swept expired sessions", "count", removed)
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// lockEntry returns the session's entry with its lock held, creating
// the entry on first use. The session lock is taken before the map
// lock is released, so a concurrent Sweep cannot delete the entry
// between lookup and lock: a locked entry is always the live one.
func (s *Store) lockEntry(id string) *entry {
	s.mu.RLock()
	e, ok := s.sessions[id]
	if ok {
		e.mu.Lock()
		s.mu.RUnlock()
		return e
	}
	s.mu.RUnlock()

	s.mu.Lock()
	e, ok = s.sessions[id]
	if !ok {
		e = &entry{ctx: newContext(id, time.Now().UTC())}
		s.sessions[id] = e
	}
	e.mu.Lock()
	s.mu.Unlock()
	return e
}

func (s *Store) expired(c *Context, now time.Time) bool {
	return s.ttl > 0 && now.Sub(c.LastActiveAt) > s.ttl
}
