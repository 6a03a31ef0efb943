package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tigertix/pkg/cache"
	"tigertix/pkg/logger"

	"github.com/google/uuid"
)

var ErrInvalidEventData = errors.New("invalid event data")

const (
	cacheKeyEventList = "events:list"
	cacheKeyEventsAll = "events:*"
	eventListCacheTTL = 30 * time.Second
)

type Service interface {
	CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetAvailableEvents(ctx context.Context) ([]EventResponse, error)
	ResolveEventByName(ctx context.Context, name string) (*EventResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

// SetCacheService enables cache-aside reads for event listings.
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEvent(ctx context.Context, adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.Date.Before(time.Now()) {
		return nil, fmt.Errorf("%w: event date must be in the future", ErrInvalidEventData)
	}

	event := &Event{
		Name:             req.Name,
		Description:      req.Description,
		Location:         req.Location,
		Date:             req.Date,
		TotalTickets:     req.TotalTickets,
		TicketsAvailable: req.TotalTickets, // all tickets start available
		Price:            req.Price,
		CreatedBy:        adminID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateListCache(ctx)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}

	// Note: total_tickets/tickets_available are deliberately NOT updatable here.
	// Inventory changes only through the booking repository's atomic operations.
	event, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

// GetAvailableEvents returns events with tickets remaining. The listing is a
// snapshot read and may briefly lag concurrent purchases; the atomic purchase
// path is the only authority on availability.
func (s *service) GetAvailableEvents(ctx context.Context) ([]EventResponse, error) {
	fetch := func() ([]EventResponse, error) {
		events, err := s.repo.GetAvailable(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list available events: %w", err)
		}
		responses := make([]EventResponse, len(events))
		for i, event := range events {
			responses[i] = event.ToResponse()
		}
		return responses, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	var responses []EventResponse
	err := s.cacheService.GetOrSet(ctx, cacheKeyEventList, eventListCacheTTL, func() (interface{}, error) {
		return fetch()
	}, &responses)
	if err != nil {
		// Cache trouble must not take down reads
		logger.GetDefault().WithError(err).Warn("event list cache unavailable, reading from database")
		return fetch()
	}
	return responses, nil
}

func (s *service) ResolveEventByName(ctx context.Context, name string) (*EventResponse, error) {
	event, err := s.repo.ResolveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, cacheKeyEventsAll); err != nil {
		logger.GetDefault().WithError(err).Warn("failed to invalidate event list cache")
	}
}
