package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeRepository mirrors the real repository's guarantees: the purchase
// decision and the decrement happen under one lock, as the conditional
// UPDATE does in PostgreSQL, so it is safe to hammer concurrently.
type fakeRepository struct {
	mu        sync.Mutex
	available map[uuid.UUID]int
	total     map[uuid.UUID]int
	price     map[uuid.UUID]float64
	bookings  map[uuid.UUID]*Booking
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		available: make(map[uuid.UUID]int),
		total:     make(map[uuid.UUID]int),
		price:     make(map[uuid.UUID]float64),
		bookings:  make(map[uuid.UUID]*Booking),
	}
}

func (f *fakeRepository) addEvent(available int, price float64) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.available[id] = available
	f.total[id] = available
	f.price[id] = price
	return id
}

func (f *fakeRepository) availableFor(eventID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available[eventID]
}

func (f *fakeRepository) PurchaseTickets(_ context.Context, userID, eventID uuid.UUID, quantity int) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	available, ok := f.available[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	if available < quantity {
		return nil, ErrInsufficientTickets
	}

	f.available[eventID] = available - quantity

	now := time.Now()
	booking := &Booking{
		ID:         uuid.New(),
		UserID:     userID,
		EventID:    eventID,
		Quantity:   quantity,
		TotalPrice: f.price[eventID] * float64(quantity),
		Status:     StatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.bookings[booking.ID] = booking

	copied := *booking
	return &copied, nil
}

func (f *fakeRepository) CancelBooking(_ context.Context, bookingID uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now()
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	booking.UpdatedAt = now

	restored := f.available[booking.EventID] + booking.Quantity
	if restored <= f.total[booking.EventID] {
		f.available[booking.EventID] = restored
	}

	copied := *booking
	return &copied, nil
}

func (f *fakeRepository) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeRepository) GetUserBookings(_ context.Context, userID uuid.UUID, _ BookingListQuery) ([]Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			result = append(result, *booking)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) GetBookingsByEventID(_ context.Context, eventID uuid.UUID) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Booking
	for _, booking := range f.bookings {
		if booking.EventID == eventID {
			result = append(result, *booking)
		}
	}
	return result, nil
}

func TestPurchaseRejectsInvalidQuantity(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(10, 5.00)
	svc := NewService(repo, nil)

	for _, quantity := range []int{0, -1, -100} {
		_, err := svc.Purchase(context.Background(), uuid.New(), eventID, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	assert.Equal(t, 10, repo.availableFor(eventID), "invalid requests must not touch inventory")
}

func TestPurchaseUnknownEvent(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	_, err := svc.Purchase(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestPurchaseInsufficientTickets(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(3, 10.00)
	svc := NewService(repo, nil)

	_, err := svc.Purchase(context.Background(), uuid.New(), eventID, 4)
	assert.ErrorIs(t, err, ErrInsufficientTickets)
	assert.Equal(t, 3, repo.availableFor(eventID), "failed purchase must leave inventory unchanged")
}

func TestPurchaseExactRemainingStock(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(5, 10.00)
	svc := NewService(repo, nil)

	booking, err := svc.Purchase(context.Background(), uuid.New(), eventID, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, booking.Quantity)
	assert.Equal(t, 50.00, booking.TotalPrice)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.Equal(t, 0, repo.availableFor(eventID))
}

func TestConcurrentPurchasesOnlyOneWins(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(100, 1.00)
	svc := NewService(repo, nil)

	// Two buyers both want 60 of 100. Both cannot win.
	results := make([]error, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		i := i
		g.Go(func() error {
			_, results[i] = svc.Purchase(context.Background(), uuid.New(), eventID, 60)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientTickets)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 40, repo.availableFor(eventID))
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(100, 1.00)
	svc := NewService(repo, nil)

	const buyers = 10
	const perBuyer = 15

	var successes int
	var mu sync.Mutex
	var g errgroup.Group
	for i := 0; i < buyers; i++ {
		g.Go(func() error {
			if _, err := svc.Purchase(context.Background(), uuid.New(), eventID, perBuyer); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	sold := successes * perBuyer
	assert.LessOrEqual(t, sold, 100, "total sold can never exceed initial stock")
	assert.Equal(t, 100-sold, repo.availableFor(eventID))
}

func TestCancelRestoresInventory(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(10, 5.00)
	svc := NewService(repo, nil)

	booking, err := svc.Purchase(context.Background(), uuid.New(), eventID, 4)
	require.NoError(t, err)
	require.Equal(t, 6, repo.availableFor(eventID))

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 10, repo.availableFor(eventID))
}

func TestCancelIsIdempotentOnInventory(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(10, 5.00)
	svc := NewService(repo, nil)

	booking, err := svc.Purchase(context.Background(), uuid.New(), eventID, 4)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), booking.ID)
	require.NoError(t, err)

	// Second cancel must fail and must not restore tickets again
	_, err = svc.Cancel(context.Background(), booking.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, 10, repo.availableFor(eventID))
}

func TestCancelUnknownBooking(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	_, err := svc.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(10, 5.00)
	svc := NewService(repo, nil)

	userID := uuid.New()
	_, err := svc.Purchase(context.Background(), userID, eventID, 2)
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), userID, eventID, 1)
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), uuid.New(), eventID, 1)
	require.NoError(t, err)

	result, count, err := svc.GetUserBookings(context.Background(), userID, BookingListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, result, 2)
}

// unavailableRepository simulates the storage layer being down
type unavailableRepository struct {
	*fakeRepository
}

func (u *unavailableRepository) PurchaseTickets(context.Context, uuid.UUID, uuid.UUID, int) (*Booking, error) {
	return nil, storageError("failed to decrement inventory", errors.New("connection refused"))
}

func TestPurchaseStorageFailureIsRetryable(t *testing.T) {
	svc := NewService(&unavailableRepository{newFakeRepository()}, nil)

	_, err := svc.Purchase(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	// An outage must never masquerade as a domain rejection
	assert.NotErrorIs(t, err, ErrInsufficientTickets)
	assert.NotErrorIs(t, err, ErrEventNotFound)

	status, _ := purchaseErrorStatus(err)
	assert.Equal(t, 503, status)
}

func TestGetEventBookingsSummary(t *testing.T) {
	repo := newFakeRepository()
	eventID := repo.addEvent(20, 5.00)
	svc := NewService(repo, nil)

	_, err := svc.Purchase(context.Background(), uuid.New(), eventID, 3)
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), uuid.New(), eventID, 2)
	require.NoError(t, err)

	cancelled, err := svc.Purchase(context.Background(), uuid.New(), eventID, 4)
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), cancelled.ID)
	require.NoError(t, err)

	// Unrelated event must not leak into the listing
	otherEventID := repo.addEvent(10, 8.00)
	_, err = svc.Purchase(context.Background(), uuid.New(), otherEventID, 1)
	require.NoError(t, err)

	result, summary, err := svc.GetEventBookings(context.Background(), eventID)
	require.NoError(t, err)

	assert.Len(t, result, 3)
	assert.Equal(t, 2, summary.ConfirmedBookings)
	assert.Equal(t, 1, summary.CancelledBookings)
	assert.Equal(t, 5, summary.TicketsSold, "cancelled quantities must not count as sold")
}
