package session

import (
	"sync"
	"time"
)

// Store holds session records keyed by full identifier.
type Store interface {
	// Get returns a copy of the session, or false if it is missing or expired.
	Get(id string) (*Data, bool)
	// Set stores or replaces a session.
	Set(d *Data)
	// Delete removes a session. Returns true if it existed.
	Delete(id string) bool
	// Touch marks a live session as seen at now. Returns false if the
	// session is missing or already expired.
	Touch(id string, now time.Time) bool
	// Count returns the number of stored sessions, expired or not.
	Count() int
	// Live returns the number of sessions not yet expired at now.
	Live(now time.Time) int
	// Sweep removes sessions idle past the TTL and returns how many it removed.
	Sweep(now time.Time) int
}

// MemoryStore is a thread-safe in-memory implementation of Store.
// Sessions expire after ttl without a Touch; a ttl <= 0 disables expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Data
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*Data),
		now:      time.Now,
	}
}

// TTL returns the idle timeout.
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

func (s *MemoryStore) expired(d *Data, now time.Time) bool {
	return s.ttl > 0 && now.Sub(d.LastSeen) > s.ttl
}

// Get retrieves a session by ID.
func (s *MemoryStore) Get(id string) (*Data, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.sessions[id]
	if !ok || s.expired(d, s.now()) {
		return nil, false
	}
	return d.clone(), true
}

// Set stores a copy of d. A nil d is ignored.
func (s *MemoryStore) Set(d *Data) {
	if d == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[d.ID] = d.clone()
}

// Delete removes a session by ID.
func (s *MemoryStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[id]; exists {
		delete(s.sessions, id)
		return true
	}
	return false
}

// Touch updates LastSeen for a live session.
func (s *MemoryStore) Touch(id string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.sessions[id]
	if !ok {
		return false
	}
	if s.expired(d, now) {
		delete(s.sessions, id)
		return false
	}
	d.LastSeen = now
	return true
}

// Count returns the number of stored sessions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Live counts unexpired sessions.
func (s *MemoryStore) Live(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.sessions {
		if !s.expired(d, now) {
			n++
		}
	}
	return n
}

// Sweep deletes expired sessions.
func (s *MemoryStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, d := range s.sessions {
		if s.expired(d, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
