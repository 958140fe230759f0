// Package memory holds the live conversation store. Sessions are in-process
// state: Get hands out the live session with its per-session turn lock held,
// Save releases it, so exactly one turn at a time mutates a session while the
// store's own mutex only guards the map and the search slots.
package memory

import (
	"sync"
	"time"

	"github.com/Desenvolvimentokot/Avi-Assistente-de-Viagens-Inteligente-sub000/internal/domain"
)

// DefaultTTL is how long an idle session survives before lazy eviction
const DefaultTTL = 24 * time.Hour

type entry struct {
	// turn serializes whole chat turns on the session; held from Get to Save
	turn sync.Mutex

	// refs counts callers between Get/Peek and release; pinned entries are
	// never swept, so a turn always finds its entry again on Save
	refs int

	session    *domain.DialogueSession
	searching  bool
	lastAccess time.Time
}

// Store implements domain.SessionStore with a map, per-session turn locks and
// per-session search slots. Expired sessions are swept lazily on access.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration

	// now is swapped in tests to drive eviction
	now func() time.Time
}

// NewStore creates a session store. ttl <= 0 falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for the id, creating a fresh collecting session
// when the id is unseen or its previous session expired. The session's turn
// lock is held until Save, so concurrent turns on one session serialize here.
func (s *Store) Get(id string) *domain.DialogueSession {
	s.mu.Lock()
	s.sweep()

	e, ok := s.sessions[id]
	if !ok {
		now := s.now()
		e = &entry{
			session: &domain.DialogueSession{
				ID:        id,
				Step:      domain.StepCollecting,
				CreatedAt: now,
				UpdatedAt: now,
			},
			lastAccess: now,
		}
		s.sessions[id] = e
	}
	e.lastAccess = s.now()
	e.refs++
	s.mu.Unlock()

	// blocking on the turn lock must not hold the map lock, or one long turn
	// would stall every other session
	e.turn.Lock()
	return e.session
}

// Save persists the session, refreshes its eviction deadline and releases the
// turn lock taken by the matching Get
func (s *Store) Save(session *domain.DialogueSession) {
	s.mu.Lock()

	now := s.now()
	session.UpdatedAt = now

	e, ok := s.sessions[session.ID]
	if !ok {
		s.sessions[session.ID] = &entry{session: session, lastAccess: now}
		s.mu.Unlock()
		return
	}
	e.session = session
	e.lastAccess = now
	if e.refs > 0 {
		e.refs--
	}
	s.mu.Unlock()

	e.turn.Unlock()
}

// Peek returns a copy of the session for read-only use, or nil when the id is
// unknown. It never creates a session and never refreshes the eviction
// deadline.
func (s *Store) Peek(id string) *domain.DialogueSession {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	e.refs++
	s.mu.Unlock()

	e.turn.Lock()
	snapshot := *e.session
	snapshot.History = append([]domain.HistoryEntry(nil), e.session.History...)
	e.turn.Unlock()

	s.mu.Lock()
	if e.refs > 0 {
		e.refs--
	}
	s.mu.Unlock()

	return &snapshot
}

// TryLockForSearch acquires the session's search slot without blocking. A
// second caller gets false until Unlock, which is the at-most-one-search
// guarantee per session.
func (s *Store) TryLockForSearch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	if e.searching {
		return false
	}
	e.searching = true
	return true
}

// Unlock releases the session's search slot. Unlocking an unknown or
// unlocked session is a no-op.
func (s *Store) Unlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		e.searching = false
	}
}

// Len reports how many sessions are live (expired ones included until the
// next sweep)
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sweep drops expired sessions. Sessions with a search in flight or a turn in
// progress are kept so the running caller can still save and unlock cleanly.
// Caller holds the map lock.
func (s *Store) sweep() {
	deadline := s.now().Add(-s.ttl)
	for id, e := range s.sessions {
		if e.searching || e.refs > 0 {
			continue
		}
		if e.lastAccess.Before(deadline) {
			delete(s.sessions, id)
		}
	}
}
