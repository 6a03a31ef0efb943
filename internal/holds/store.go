package holds

import (
	"context"
	"sync"
	"time"
)

// Store keeps pending holds. Implementations enforce two rules: an expired
// hold behaves as if it never existed, and Take consumes - a hold can be
// retrieved at most once regardless of what its caller does with it.
type Store interface {
	Put(ctx context.Context, hold PendingHold) error
	Take(ctx context.Context, holdID string) (*PendingHold, error)
}

// MemoryStore is the process-local implementation: a mutex-guarded map with
// lazy expiry. Holds are advisory, so losing them on restart is acceptable.
type MemoryStore struct {
	mu    sync.Mutex
	holds map[string]PendingHold
	now   func() time.Time
}

// NewMemoryStore creates an in-process hold store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		holds: make(map[string]PendingHold),
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, hold PendingHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()
	s.holds[hold.ID] = hold
	return nil
}

func (s *MemoryStore) Take(_ context.Context, holdID string) (*PendingHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked()

	hold, ok := s.holds[holdID]
	if !ok {
		return nil, ErrHoldNotFound
	}

	// Single-use: consumed whether or not the confirm that follows succeeds
	delete(s.holds, holdID)

	if hold.Expired(s.now()) {
		return nil, ErrHoldNotFound
	}

	return &hold, nil
}

// purgeExpiredLocked drops expired holds. Called on every access, so
// abandoned holds have a bounded lifetime without a background sweeper.
func (s *MemoryStore) purgeExpiredLocked() {
	now := s.now()
	for id, hold := range s.holds {
		if hold.Expired(now) {
			delete(s.holds, id)
		}
	}
}
