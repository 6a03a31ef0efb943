package holds

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHold(ttl time.Duration) PendingHold {
	return PendingHold{
		ID:        uuid.NewString(),
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		Quantity:  2,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestMemoryStorePutTake(t *testing.T) {
	store := NewMemoryStore()
	hold := newHold(10 * time.Minute)

	require.NoError(t, store.Put(context.Background(), hold))

	got, err := store.Take(context.Background(), hold.ID)
	require.NoError(t, err)
	assert.Equal(t, hold.ID, got.ID)
	assert.Equal(t, hold.EventID, got.EventID)
	assert.Equal(t, hold.Quantity, got.Quantity)
}

func TestMemoryStoreTakeIsSingleUse(t *testing.T) {
	store := NewMemoryStore()
	hold := newHold(10 * time.Minute)
	require.NoError(t, store.Put(context.Background(), hold))

	_, err := store.Take(context.Background(), hold.ID)
	require.NoError(t, err)

	_, err = store.Take(context.Background(), hold.ID)
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestMemoryStoreTakeUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Take(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestMemoryStoreExpiredHoldBehavesAsMissing(t *testing.T) {
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	hold := PendingHold{
		ID:        uuid.NewString(),
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		Quantity:  1,
		ExpiresAt: current.Add(10 * time.Minute),
	}
	require.NoError(t, store.Put(context.Background(), hold))

	current = current.Add(10*time.Minute + time.Second)

	_, err := store.Take(context.Background(), hold.ID)
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestMemoryStoreLazyPurge(t *testing.T) {
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	expiring := PendingHold{
		ID:        uuid.NewString(),
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		Quantity:  1,
		ExpiresAt: current.Add(time.Minute),
	}
	require.NoError(t, store.Put(context.Background(), expiring))

	current = current.Add(2 * time.Minute)

	// Any access sweeps expired entries, no background goroutine involved
	fresh := PendingHold{
		ID:        uuid.NewString(),
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		Quantity:  1,
		ExpiresAt: current.Add(time.Minute),
	}
	require.NoError(t, store.Put(context.Background(), fresh))

	store.mu.Lock()
	_, stillThere := store.holds[expiring.ID]
	size := len(store.holds)
	store.mu.Unlock()

	assert.False(t, stillThere)
	assert.Equal(t, 1, size)
}

func TestMemoryStoreHoldLiveJustBeforeDeadline(t *testing.T) {
	store := NewMemoryStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	hold := PendingHold{
		ID:        uuid.NewString(),
		EventID:   uuid.New(),
		UserID:    uuid.New(),
		Quantity:  1,
		ExpiresAt: current.Add(time.Minute),
	}
	require.NoError(t, store.Put(context.Background(), hold))

	// One instant before the deadline the hold is still live
	current = hold.ExpiresAt.Add(-time.Nanosecond)

	got, err := store.Take(context.Background(), hold.ID)
	require.NoError(t, err)
	assert.Equal(t, hold.ID, got.ID)
}

func TestPendingHoldExpiredAtDeadline(t *testing.T) {
	deadline := time.Now()
	hold := PendingHold{ExpiresAt: deadline}

	assert.False(t, hold.Expired(deadline.Add(-time.Second)))
	assert.True(t, hold.Expired(deadline))
	assert.True(t, hold.Expired(deadline.Add(time.Second)))
}
