package workday

import (
	"sync"
	"time"

	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/google/uuid"
)

// DefaultPendingTTL is how long a held out-of-window punch stays confirmable.
const DefaultPendingTTL = 8 * time.Second

// pendingPunch is a punch held in memory until the user confirms its
// overtime reason or the TTL lapses. Never persisted.
type pendingPunch struct {
	ID        string
	Username  string
	Punch     workday.Punch
	ExpiresAt time.Time
}

type pendingStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]pendingPunch
}

func newPendingStore(ttl time.Duration, now func() time.Time) *pendingStore {
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	return &pendingStore{
		ttl:   ttl,
		now:   now,
		items: make(map[string]pendingPunch),
	}
}

// Put holds a punch for the user, replacing any punch already held for them.
func (s *pendingStore) Put(username string, p workday.Punch) pendingPunch {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.Username == username {
			delete(s.items, id)
		}
	}

	item := pendingPunch{
		ID:        uuid.NewString(),
		Username:  username,
		Punch:     p,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.items[item.ID] = item
	return item
}

// Take removes and returns the held punch. Expiry is checked on take, not by
// a background sweep.
func (s *pendingStore) Take(username, id string) (pendingPunch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.Username != username {
		return pendingPunch{}, workday.ErrPendingNotFound
	}
	delete(s.items, id)

	if s.now().After(item.ExpiresAt) {
		return pendingPunch{}, workday.ErrPendingExpired
	}
	return item, nil
}

// Drop discards a held punch. Dropping an expired punch succeeds; the goal
// is removal either way.
func (s *pendingStore) Drop(username, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.Username != username {
		return workday.ErrPendingNotFound
	}
	delete(s.items, id)
	return nil
}
