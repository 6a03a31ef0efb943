package holds

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrHoldNotFound covers both an unknown hold id and an expired hold: by the
// time a caller asks, the two are indistinguishable and handled the same way.
var ErrHoldNotFound = errors.New("pending booking not found or expired")

// PendingHold is an ephemeral reservation intent. It never touches durable
// inventory: availability is re-checked when the hold is confirmed, so an
// abandoned hold costs nothing but its own memory until it is swept.
type PendingHold struct {
	ID        string    `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the hold's TTL has elapsed at the given instant
func (h *PendingHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// PrepareRequest represents a request to hold tickets
type PrepareRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required"`
}

// ConfirmRequest represents a request to confirm a pending hold
type ConfirmRequest struct {
	HoldID string `json:"hold_id" binding:"required"`
}

// PrepareResponse is returned when a hold is created
type PrepareResponse struct {
	HoldID    string    `json:"hold_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Summary   string    `json:"summary"`
}
