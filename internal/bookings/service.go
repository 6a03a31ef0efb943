package bookings

import (
	"context"
	"log/slog"
	"time"

	"tigertix/internal/notifications"
	"tigertix/pkg/logger"

	"github.com/google/uuid"
)

// Service interface defines the contract for the ticket inventory.
// Purchase and Cancel are the only paths that mutate ticket counts; their
// effects are serializable because the repository expresses every mutation
// as a single atomic conditional update.
type Service interface {
	Purchase(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetEventBookings(ctx context.Context, eventID uuid.UUID) ([]Booking, EventBookingSummary, error)
}

type service struct {
	repo     Repository
	producer notifications.Producer
}

// NewService creates a new booking service instance. The producer may be
// nil; notifications are best-effort and never gate a purchase.
func NewService(repo Repository, producer notifications.Producer) Service {
	return &service{
		repo:     repo,
		producer: producer,
	}
}

// Purchase atomically buys tickets for an event. Validation happens before
// storage is touched; the repository never retries a failed conditional
// update - a loss under contention is a final answer for this call.
func (s *service) Purchase(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*Booking, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	booking, err := s.repo.PurchaseTickets(ctx, userID, eventID, quantity)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogPurchase(ctx, booking.ID.String(), booking.EventID.String(), booking.Quantity)
	s.publish(ctx, notifications.TypeBookingConfirmed, booking)

	return booking, nil
}

// Cancel marks a booking cancelled and restores its tickets exactly once.
func (s *service) Cancel(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.repo.CancelBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	logger.GetDefault().LogBookingCancelled(ctx, booking.ID.String(), booking.EventID.String(), booking.Quantity)
	s.publish(ctx, notifications.TypeBookingCancelled, booking)

	return booking, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	return s.repo.GetBookingByID(ctx, bookingID)
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return s.repo.GetUserBookings(ctx, userID, query)
}

// GetEventBookings lists every booking of an event alongside aggregate sale
// figures. Cancelled bookings count toward churn, not toward tickets sold.
func (s *service) GetEventBookings(ctx context.Context, eventID uuid.UUID) ([]Booking, EventBookingSummary, error) {
	bookings, err := s.repo.GetBookingsByEventID(ctx, eventID)
	if err != nil {
		return nil, EventBookingSummary{}, err
	}

	var summary EventBookingSummary
	for i := range bookings {
		b := &bookings[i]
		if b.IsConfirmed() {
			summary.ConfirmedBookings++
			summary.TicketsSold += b.Quantity
		}
		if b.IsCancelled() {
			summary.CancelledBookings++
		}
	}

	return bookings, summary, nil
}

func (s *service) publish(ctx context.Context, notificationType string, booking *Booking) {
	if s.producer == nil {
		return
	}

	notification := &notifications.BookingNotification{
		Type:       notificationType,
		BookingID:  booking.ID.String(),
		EventID:    booking.EventID.String(),
		UserID:     booking.UserID.String(),
		Quantity:   booking.Quantity,
		TotalPrice: booking.TotalPrice,
		OccurredAt: time.Now().UTC(),
	}

	if err := s.producer.PublishBookingNotification(ctx, notification); err != nil {
		// The booking is already durable; a lost notification is not a failure
		logger.GetDefault().Warn("failed to publish booking notification",
			slog.String("booking_id", booking.ID.String()),
			slog.Any("error", err),
		)
	}
}
