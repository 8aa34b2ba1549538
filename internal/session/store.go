// Package session holds interview configuration between the start call and
// the turns that follow. Entries are written once and read-only afterward;
// a TTL plus a max-entries bound keeps the map from growing for the life of
// the process.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rehearse-ai/rehearse/internal/interview"
)

type entry struct {
	cfg       interview.Config
	createdAt time.Time
}

type Store struct {
	mu    sync.Mutex
	items map[string]entry
	ttl   time.Duration
	limit int
	now   func() time.Time
}

func NewStore(ttl time.Duration, limit int) *Store {
	return &Store{
		items: make(map[string]entry),
		ttl:   ttl,
		limit: limit,
		now:   time.Now,
	}
}

// Put stores a configuration under a freshly generated session id. When the
// store is full the oldest entry is evicted first.
func (s *Store) Put(cfg interview.Config) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limit > 0 && len(s.items) >= s.limit {
		s.evictOldestLocked()
	}

	id := uuid.NewString()
	s.items[id] = entry{cfg: cfg, createdAt: s.now()}
	return id
}

// Get returns the configuration for a session id. Expired entries behave as
// missing and are removed.
func (s *Store) Get(id string) (interview.Config, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		return interview.Config{}, false
	}
	if s.ttl > 0 && s.now().Sub(e.createdAt) > s.ttl {
		delete(s.items, id)
		return interview.Config{}, false
	}
	return e.cfg, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for id, e := range s.items {
		if oldestID == "" || e.createdAt.Before(oldestAt) {
			oldestID = id
			oldestAt = e.createdAt
		}
	}
	if oldestID != "" {
		delete(s.items, oldestID)
	}
}
