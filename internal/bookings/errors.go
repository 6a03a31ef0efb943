package bookings

import "errors"

// Sentinel errors for the ticket inventory. Callers branch on these:
// insufficient inventory is a routine outcome of racing purchases, not a fault.
var (
	ErrInvalidQuantity     = errors.New("quantity must be a positive integer")
	ErrEventNotFound       = errors.New("event not found")
	ErrInsufficientTickets = errors.New("not enough tickets available")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")

	// ErrStorageUnavailable marks driver or connection failures, the retryable
	// kind, as opposed to the domain rejections above which are final.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
