package holds

import (
	"context"
	"fmt"
	"time"

	"tigertix/internal/bookings"
	"tigertix/internal/events"
	"tigertix/pkg/logger"

	"github.com/google/uuid"
)

// Service is the two-phase booking workflow: Prepare records intent without
// reserving stock, Confirm re-validates against live inventory and commits
// through the atomic purchase path.
type Service interface {
	Prepare(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*PrepareResponse, error)
	Confirm(ctx context.Context, holdID string) (*bookings.Booking, error)
}

type service struct {
	store          Store
	eventService   events.Service
	bookingService bookings.Service
	ttl            time.Duration
	now            func() time.Time
}

// NewService creates a booking workflow over the given hold store
func NewService(store Store, eventService events.Service, bookingService bookings.Service, ttl time.Duration) Service {
	return &service{
		store:          store,
		eventService:   eventService,
		bookingService: bookingService,
		ttl:            ttl,
		now:            time.Now,
	}
}

// Prepare snapshots availability and records a time-boxed hold. The check is
// optimistic: it keeps obviously doomed holds out but reserves nothing, and
// the stock it saw can be gone by confirm time.
func (s *service) Prepare(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*PrepareResponse, error) {
	if quantity <= 0 {
		return nil, bookings.ErrInvalidQuantity
	}

	event, err := s.eventService.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.TicketsAvailable < quantity {
		return nil, bookings.ErrInsufficientTickets
	}

	hold := PendingHold{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserID:    userID,
		Quantity:  quantity,
		ExpiresAt: s.now().Add(s.ttl),
	}

	if err := s.store.Put(ctx, hold); err != nil {
		return nil, fmt.Errorf("failed to store pending booking: %w", err)
	}

	logger.GetDefault().LogHoldCreated(ctx, hold.ID, eventID.String(), quantity, hold.ExpiresAt)

	return &PrepareResponse{
		HoldID:    hold.ID,
		ExpiresAt: hold.ExpiresAt,
		Summary:   fmt.Sprintf("Hold %d ticket(s) for %q", quantity, event.Name),
	}, nil
}

// Confirm consumes the hold and delegates to the inventory store's atomic
// purchase. The hold is single-use whatever the outcome: if stock vanished
// between prepare and confirm the purchase error propagates and the hold is
// already gone.
func (s *service) Confirm(ctx context.Context, holdID string) (*bookings.Booking, error) {
	hold, err := s.store.Take(ctx, holdID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingService.Purchase(ctx, hold.UserID, hold.EventID, hold.Quantity)
	logger.GetDefault().LogHoldConsumed(ctx, holdID, err == nil)
	if err != nil {
		return nil, err
	}

	return booking, nil
}
