// Package sessionstore keeps per-conversation session state in memory.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/doeshing/minebot/internal/domain"
	"github.com/doeshing/minebot/internal/ports"
)

// MemoryStore is a mutex-guarded map of pending sessions. Entries older
// than ttl are treated as absent and removed by Sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[domain.SessionKey]domain.SessionState
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an empty store. A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration, clock ports.Clock) *MemoryStore {
	now := time.Now
	if clock != nil {
		now = clock.Now
	}
	return &MemoryStore{
		sessions: make(map[domain.SessionKey]domain.SessionState),
		ttl:      ttl,
		now:      now,
	}
}

// Put stores state for key, replacing any pending one.
func (s *MemoryStore) Put(key domain.SessionKey, state domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = state
}

// Take implements ports.SessionStore.
func (s *MemoryStore) Take(key domain.SessionKey) (domain.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[key]
	if !ok {
		return domain.SessionState{}, false
	}
	delete(s.sessions, key)
	if state.Expired(s.now(), s.ttl) {
		return domain.SessionState{}, false
	}
	return state, true
}

// Peek returns the live state for key without consuming it.
func (s *MemoryStore) Peek(key domain.SessionKey) (domain.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[key]
	if !ok || state.Expired(s.now(), s.ttl) {
		return domain.SessionState{}, false
	}
	return state, true
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired entries and reports how many were dropped.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for key, state := range s.sessions {
		if state.Expired(now, s.ttl) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, when
// set, receives the number of entries dropped by each non-empty sweep.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(int)) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

var _ ports.SessionStore = (*MemoryStore)(nil)
