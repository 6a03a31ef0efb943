package chat

import (
	"tigertix/internal/events"
	"tigertix/internal/holds"
)

type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type ParseResponse struct {
	Parsed ParsedMessage `json:"parsed"`
	Reply  string        `json:"reply"`
}

// PrepareRequest accepts an event by name so the assistant flow can go
// straight from parsed text to a hold without a separate lookup call.
type PrepareRequest struct {
	EventName string `json:"event" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type PrepareResponse struct {
	Event *events.EventResponse  `json:"event"`
	Hold  *holds.PrepareResponse `json:"hold"`
}

type ConfirmRequest struct {
	HoldID string `json:"hold_id" binding:"required"`
}
