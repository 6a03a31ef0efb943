package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	events map[uuid.UUID]*Event
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: make(map[uuid.UUID]*Event)}
}

func (f *fakeRepository) Create(_ context.Context, event *Event) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	f.events[event.ID] = event
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	if name, ok := updates["name"].(string); ok {
		event.Name = name
	}
	if price, ok := updates["price"].(float64); ok {
		event.Price = price
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) GetAll(_ context.Context, _ EventListQuery) ([]Event, int64, error) {
	var result []Event
	for _, event := range f.events {
		result = append(result, *event)
	}
	return result, int64(len(result)), nil
}

func (f *fakeRepository) GetAvailable(_ context.Context) ([]Event, error) {
	var result []Event
	for _, event := range f.events {
		if event.TicketsAvailable > 0 {
			result = append(result, *event)
		}
	}
	return result, nil
}

func (f *fakeRepository) ResolveByName(_ context.Context, name string) (*Event, error) {
	// Exact match first, substring second, same order as the real query
	for _, event := range f.events {
		if strings.EqualFold(event.Name, name) {
			copied := *event
			return &copied, nil
		}
	}
	for _, event := range f.events {
		if strings.Contains(strings.ToLower(event.Name), strings.ToLower(name)) {
			copied := *event
			return &copied, nil
		}
	}
	return nil, ErrEventNotFound
}

func TestCreateEventStartsFullyAvailable(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	resp, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:         "Jazz Night",
		Location:     "Student Union Ballroom",
		Date:         time.Now().Add(14 * 24 * time.Hour),
		TotalTickets: 150,
		Price:        12.50,
	})
	require.NoError(t, err)

	assert.Equal(t, 150, resp.TotalTickets)
	assert.Equal(t, 150, resp.TicketsAvailable, "every ticket starts available")
}

func TestCreateEventRejectsPastDate(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:         "Yesterday's Show",
		Location:     "Campus Playhouse",
		Date:         time.Now().Add(-time.Hour),
		TotalTickets: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidEventData)
}

func TestGetEventByIDUnknown(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.GetEventByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestResolveEventByName(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:         "Jazz Night",
		Location:     "Student Union Ballroom",
		Date:         time.Now().Add(24 * time.Hour),
		TotalTickets: 50,
	})
	require.NoError(t, err)

	exact, err := svc.ResolveEventByName(context.Background(), "jazz night")
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", exact.Name)

	partial, err := svc.ResolveEventByName(context.Background(), "jazz")
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", partial.Name)

	_, err = svc.ResolveEventByName(context.Background(), "opera")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEventCannotTouchInventory(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	created, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:         "Jazz Night",
		Location:     "Student Union Ballroom",
		Date:         time.Now().Add(24 * time.Hour),
		TotalTickets: 50,
	})
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	newName := "Jazz Night (Rescheduled)"
	updated, err := svc.UpdateEvent(context.Background(), id, UpdateEventRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, 50, updated.TicketsAvailable, "updates never change ticket counts")
	assert.Equal(t, 50, updated.TotalTickets)
}
