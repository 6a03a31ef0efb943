package events

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name             string    `json:"name" gorm:"not null;size:255"`
	Description      string    `json:"description" gorm:"type:text"`
	Location         string    `json:"location" gorm:"not null;size:255"`
	Date             time.Time `json:"date" gorm:"not null"`
	TotalTickets     int       `json:"total_tickets" gorm:"not null;check:total_tickets >= 0"`
	TicketsAvailable int       `json:"tickets_available" gorm:"not null;check:tickets_available >= 0"`
	Price            float64   `json:"price" gorm:"not null;check:price >= 0"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type EventResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Location         string    `json:"location"`
	Date             time.Time `json:"date"`
	TotalTickets     int       `json:"total_tickets"`
	TicketsAvailable int       `json:"tickets_available"`
	Price            float64   `json:"price"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Name         string    `json:"name" binding:"required,min=3,max=255"`
	Description  string    `json:"description" binding:"max=2000"`
	Location     string    `json:"location" binding:"required,min=3,max=255"`
	Date         time.Time `json:"date" binding:"required"`
	TotalTickets int       `json:"total_tickets" binding:"required,min=1,max=100000"`
	Price        float64   `json:"price" binding:"min=0"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Location    *string    `json:"location" binding:"omitempty,min=3,max=255"`
	Date        *time.Time `json:"date"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
}

type EventListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search        string `form:"search"`
	Location      string `form:"location"`
	AvailableOnly bool   `form:"available_only"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// Helper method to convert Event to EventResponse
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:               e.ID.String(),
		Name:             e.Name,
		Description:      e.Description,
		Location:         e.Location,
		Date:             e.Date,
		TotalTickets:     e.TotalTickets,
		TicketsAvailable: e.TicketsAvailable,
		Price:            e.Price,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
