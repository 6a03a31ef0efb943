package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the durable record of a committed ticket purchase.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	Quantity    int        `gorm:"not null;check:quantity > 0" json:"quantity"`
	TotalPrice  float64    `gorm:"not null" json:"total_price"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// PurchaseRequest represents a direct ticket purchase request
type PurchaseRequest struct {
	EventID  string `json:"event_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Quantity    int        `json:"quantity"`
	TotalPrice  float64    `json:"total_price"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// EventBookingSummary aggregates the booking activity of a single event
type EventBookingSummary struct {
	ConfirmedBookings int `json:"confirmed_bookings"`
	CancelledBookings int `json:"cancelled_bookings"`
	TicketsSold       int `json:"tickets_sold"`
}

// BookingListQuery holds filters for booking listings
type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED"`
}

// ToResponse converts a Booking to its API representation
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		EventID:     b.EventID.String(),
		Quantity:    b.Quantity,
		TotalPrice:  b.TotalPrice,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
}
