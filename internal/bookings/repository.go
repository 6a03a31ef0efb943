package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tigertix/internal/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Atomic inventory operations
	PurchaseTickets(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)

	// Queries
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetBookingsByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// PurchaseTickets decrements event inventory and records the booking in a
// single transaction. The decrement is a conditional UPDATE guarded by the
// current availability, so concurrent purchasers can never both observe
// sufficient stock and both succeed: the storage engine serializes the
// guarded writes, and a request that loses the race affects zero rows.
func (r *repository) PurchaseTickets(ctx context.Context, userID, eventID uuid.UUID, quantity int) (*Booking, error) {
	var booking *Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(
			`UPDATE events SET tickets_available = tickets_available - ?, updated_at = ?
			 WHERE id = ? AND tickets_available >= ?`,
			quantity, time.Now().UTC(), eventID, quantity,
		)
		if result.Error != nil {
			return storageError("failed to decrement inventory", result.Error)
		}

		if result.RowsAffected == 0 {
			// Diagnostic read only: the decision was already made by the
			// conditional update, this distinguishes the two failure kinds.
			var event events.Event
			if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEventNotFound
				}
				return storageError("failed to inspect event after rejected purchase", err)
			}
			return ErrInsufficientTickets
		}

		// Price is read in the same transaction so total_price reflects the
		// price at commit time.
		var event events.Event
		if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
			return storageError("failed to load event for booking", err)
		}

		booking = &Booking{
			UserID:     userID,
			EventID:    eventID,
			Quantity:   quantity,
			TotalPrice: float64(quantity) * event.Price,
			Status:     StatusConfirmed,
		}

		if err := tx.Create(booking).Error; err != nil {
			return storageError("failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// CancelBooking marks a confirmed booking cancelled and restores its quantity
// to the event, as one transaction. The status flip is itself a conditional
// update, so a booking can be cancelled at most once and its tickets are
// restored exactly once.
func (r *repository) CancelBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	var booking Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, StatusConfirmed).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return storageError("failed to cancel booking", result.Error)
		}

		if result.RowsAffected == 0 {
			if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBookingNotFound
				}
				return storageError("failed to inspect booking after rejected cancel", err)
			}
			return ErrAlreadyCancelled
		}

		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			return storageError("failed to reload cancelled booking", err)
		}

		// Restore inventory, guarded against exceeding the event capacity.
		restore := tx.Exec(
			`UPDATE events SET tickets_available = tickets_available + ?, updated_at = ?
			 WHERE id = ? AND tickets_available + ? <= total_tickets`,
			booking.Quantity, now, booking.EventID, booking.Quantity,
		)
		if restore.Error != nil {
			return storageError("failed to restore inventory", restore.Error)
		}
		if restore.RowsAffected == 0 {
			return fmt.Errorf("inventory restore for booking %s would exceed event capacity", bookingID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, storageError("failed to load booking", err)
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)

	if query.Status != "" {
		baseQuery = baseQuery.Where("status = ?", query.Status)
	}

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, storageError("failed to count bookings", err)
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, storageError("failed to list bookings", err)
	}

	return bookings, totalCount, nil
}

func (r *repository) GetBookingsByEventID(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, storageError("failed to list event bookings", err)
	}

	return bookings, nil
}

// storageError tags a driver failure with ErrStorageUnavailable while keeping
// the underlying error in the chain
func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorageUnavailable, err)
}
