package holds

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tigertix/internal/bookings"
	"tigertix/internal/events"
)

// fakeEventCatalog serves event snapshots for Prepare. Availability here is
// what Prepare sees; the fakeInventory below is what Confirm settles
// against, and the two can be set out of sync to model stale snapshots.
type fakeEventCatalog struct {
	mu     sync.Mutex
	events map[uuid.UUID]events.EventResponse
}

func newFakeEventCatalog() *fakeEventCatalog {
	return &fakeEventCatalog{events: make(map[uuid.UUID]events.EventResponse)}
}

func (f *fakeEventCatalog) addEvent(name string, available int) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.events[id] = events.EventResponse{
		ID:               id.String(),
		Name:             name,
		TotalTickets:     available,
		TicketsAvailable: available,
	}
	return id
}

func (f *fakeEventCatalog) GetEventByID(_ context.Context, id uuid.UUID) (*events.EventResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[id]
	if !ok {
		return nil, events.ErrEventNotFound
	}
	return &event, nil
}

func (f *fakeEventCatalog) CreateEvent(context.Context, uuid.UUID, events.CreateEventRequest) (*events.EventResponse, error) {
	panic("not used")
}

func (f *fakeEventCatalog) UpdateEvent(context.Context, uuid.UUID, events.UpdateEventRequest) (*events.EventResponse, error) {
	panic("not used")
}

func (f *fakeEventCatalog) DeleteEvent(context.Context, uuid.UUID) error { panic("not used") }

func (f *fakeEventCatalog) GetAllEvents(context.Context, events.EventListQuery) (*events.PaginatedEvents, error) {
	panic("not used")
}

func (f *fakeEventCatalog) GetAvailableEvents(context.Context) ([]events.EventResponse, error) {
	panic("not used")
}

func (f *fakeEventCatalog) ResolveEventByName(context.Context, string) (*events.EventResponse, error) {
	panic("not used")
}

// fakeInventory implements the purchase side with real decrement semantics
type fakeInventory struct {
	mu        sync.Mutex
	available map[uuid.UUID]int
	purchases int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{available: make(map[uuid.UUID]int)}
}

func (f *fakeInventory) setStock(eventID uuid.UUID, available int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available[eventID] = available
}

func (f *fakeInventory) stock(eventID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available[eventID]
}

func (f *fakeInventory) Purchase(_ context.Context, userID, eventID uuid.UUID, quantity int) (*bookings.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	available, ok := f.available[eventID]
	if !ok {
		return nil, bookings.ErrEventNotFound
	}
	if available < quantity {
		return nil, bookings.ErrInsufficientTickets
	}

	f.available[eventID] = available - quantity
	f.purchases++

	return &bookings.Booking{
		ID:       uuid.New(),
		UserID:   userID,
		EventID:  eventID,
		Quantity: quantity,
		Status:   bookings.StatusConfirmed,
	}, nil
}

func (f *fakeInventory) Cancel(context.Context, uuid.UUID) (*bookings.Booking, error) {
	panic("not used")
}

func (f *fakeInventory) GetBooking(context.Context, uuid.UUID) (*bookings.Booking, error) {
	panic("not used")
}

func (f *fakeInventory) GetUserBookings(context.Context, uuid.UUID, bookings.BookingListQuery) ([]bookings.Booking, int64, error) {
	panic("not used")
}

func (f *fakeInventory) GetEventBookings(context.Context, uuid.UUID) ([]bookings.Booking, bookings.EventBookingSummary, error) {
	panic("not used")
}

func newTestWorkflow(catalog *fakeEventCatalog, inventory *fakeInventory) (Service, *MemoryStore) {
	store := NewMemoryStore()
	return NewService(store, catalog, inventory, 10*time.Minute), store
}

func TestPrepareRejectsInvalidQuantity(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	svc, _ := newTestWorkflow(catalog, inventory)

	for _, quantity := range []int{0, -1} {
		_, err := svc.Prepare(context.Background(), uuid.New(), eventID, quantity)
		assert.ErrorIs(t, err, bookings.ErrInvalidQuantity)
	}
}

func TestPrepareUnknownEvent(t *testing.T) {
	svc, _ := newTestWorkflow(newFakeEventCatalog(), newFakeInventory())

	_, err := svc.Prepare(context.Background(), uuid.New(), uuid.New(), 2)
	assert.ErrorIs(t, err, events.ErrEventNotFound)
}

func TestPrepareRejectsObviouslyDoomedHold(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 3)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 3)

	svc, _ := newTestWorkflow(catalog, inventory)

	_, err := svc.Prepare(context.Background(), uuid.New(), eventID, 4)
	assert.ErrorIs(t, err, bookings.ErrInsufficientTickets)
}

func TestPrepareDoesNotReserveStock(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	svc, _ := newTestWorkflow(catalog, inventory)

	resp, err := svc.Prepare(context.Background(), uuid.New(), eventID, 5)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.HoldID)
	assert.Contains(t, resp.Summary, "Jazz Night")

	// The hold reserved nothing: a direct purchase can still take everything
	assert.Equal(t, 10, inventory.stock(eventID))
	_, err = inventory.Purchase(context.Background(), uuid.New(), eventID, 10)
	require.NoError(t, err)
}

func TestConfirmCompletesBooking(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	svc, _ := newTestWorkflow(catalog, inventory)
	userID := uuid.New()

	resp, err := svc.Prepare(context.Background(), userID, eventID, 3)
	require.NoError(t, err)

	booking, err := svc.Confirm(context.Background(), resp.HoldID)
	require.NoError(t, err)

	assert.Equal(t, userID, booking.UserID)
	assert.Equal(t, eventID, booking.EventID)
	assert.Equal(t, 3, booking.Quantity)
	assert.Equal(t, 7, inventory.stock(eventID))
}

func TestConfirmIsSingleUse(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	svc, _ := newTestWorkflow(catalog, inventory)

	resp, err := svc.Prepare(context.Background(), uuid.New(), eventID, 3)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), resp.HoldID)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), resp.HoldID)
	assert.ErrorIs(t, err, ErrHoldNotFound)
	assert.Equal(t, 7, inventory.stock(eventID), "second confirm must not purchase again")
}

func TestConfirmFailsWhenStockDrainedAfterPrepare(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	svc, _ := newTestWorkflow(catalog, inventory)

	resp, err := svc.Prepare(context.Background(), uuid.New(), eventID, 5)
	require.NoError(t, err)

	// Everything sells out between prepare and confirm
	_, err = inventory.Purchase(context.Background(), uuid.New(), eventID, 10)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), resp.HoldID)
	assert.ErrorIs(t, err, bookings.ErrInsufficientTickets)

	// The failed confirm still consumed the hold
	_, err = svc.Confirm(context.Background(), resp.HoldID)
	assert.ErrorIs(t, err, ErrHoldNotFound)
}

func TestConfirmExpiredHold(t *testing.T) {
	catalog := newFakeEventCatalog()
	eventID := catalog.addEvent("Jazz Night", 10)
	inventory := newFakeInventory()
	inventory.setStock(eventID, 10)

	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	svc := NewService(store, catalog, inventory, 10*time.Minute)

	resp, err := svc.Prepare(context.Background(), uuid.New(), eventID, 3)
	require.NoError(t, err)

	current = current.Add(11 * time.Minute)

	_, err = svc.Confirm(context.Background(), resp.HoldID)
	assert.ErrorIs(t, err, ErrHoldNotFound)
	assert.Equal(t, 10, inventory.stock(eventID), "expired confirm must not purchase")
}
