package notifications

import (
	"encoding/json"
	"time"
)

// Notification types emitted by the booking pipeline
const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingNotification is the message published for every committed
// inventory change. Consumers use it to drive emails and dashboards.
type BookingNotification struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ToJSON serializes the notification for the wire
func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// GetPartitionKey returns the Kafka partition key. Keying by event keeps
// all messages for one event's inventory in order.
func (n *BookingNotification) GetPartitionKey() string {
	return n.EventID
}
