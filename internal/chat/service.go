package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tigertix/internal/events"
	"tigertix/internal/holds"
)

type Service interface {
	HandleMessage(ctx context.Context, message string) (*ParseResponse, error)
	ListEvents(ctx context.Context) ([]events.EventResponse, error)
	PrepareByName(ctx context.Context, userID uuid.UUID, eventName string, quantity int) (*PrepareResponse, error)
	Confirm(ctx context.Context, holdID string) (string, error)
}

type service struct {
	eventService events.Service
	holdService  holds.Service
}

func NewService(eventService events.Service, holdService holds.Service) *service {
	return &service{
		eventService: eventService,
		holdService:  holdService,
	}
}

// HandleMessage parses free text and builds a reply the client can render
// directly. Booking intents that are missing a ticket count or event name get
// a prompt asking for the missing piece instead of an error.
func (s *service) HandleMessage(ctx context.Context, message string) (*ParseResponse, error) {
	parsed := Parse(message)

	resp := &ParseResponse{Parsed: parsed}

	switch parsed.Intent {
	case IntentShowEvents:
		resp.Reply = "Here are the upcoming events with tickets available."
	case IntentBook:
		switch {
		case parsed.EventName == "":
			resp.Reply = "Which event would you like tickets for?"
		case parsed.Tickets <= 0:
			resp.Reply = fmt.Sprintf("How many tickets for %q?", parsed.EventName)
		default:
			resp.Reply = fmt.Sprintf("Got it, %d ticket(s) for %q. Confirm to complete the booking.", parsed.Tickets, parsed.EventName)
		}
	default:
		resp.Reply = "Sorry, I didn't catch that. Try \"show events\" or \"book 2 tickets for Jazz Night\"."
	}

	return resp, nil
}

func (s *service) ListEvents(ctx context.Context) ([]events.EventResponse, error) {
	return s.eventService.GetAvailableEvents(ctx)
}

// PrepareByName resolves the event by its (possibly partial) name and creates
// a hold against it.
func (s *service) PrepareByName(ctx context.Context, userID uuid.UUID, eventName string, quantity int) (*PrepareResponse, error) {
	event, err := s.eventService.ResolveEventByName(ctx, eventName)
	if err != nil {
		return nil, err
	}

	eventID, err := uuid.Parse(event.ID)
	if err != nil {
		return nil, fmt.Errorf("event has malformed id %q: %w", event.ID, err)
	}

	hold, err := s.holdService.Prepare(ctx, userID, eventID, quantity)
	if err != nil {
		return nil, err
	}

	return &PrepareResponse{Event: event, Hold: hold}, nil
}

// Confirm completes a previously prepared hold and phrases the outcome
func (s *service) Confirm(ctx context.Context, holdID string) (string, error) {
	booking, err := s.holdService.Confirm(ctx, holdID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Booking confirmed. Reference %s, %d ticket(s).", booking.ID, booking.Quantity), nil
}
