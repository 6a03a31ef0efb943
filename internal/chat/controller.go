package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tigertix/internal/bookings"
	"tigertix/internal/events"
	"tigertix/internal/holds"
	"tigertix/internal/shared/utils/response"
)

type Controller interface {
	ParseMessage(c *gin.Context)
	ListEvents(c *gin.Context)
	Prepare(c *gin.Context)
	Confirm(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ParseMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	resp, err := ctrl.service.HandleMessage(c.Request.Context(), req.Message)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to parse message", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Message parsed successfully", resp, nil)
}

func (ctrl *controller) ListEvents(c *gin.Context) {
	list, err := ctrl.service.ListEvents(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list events", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", list, nil)
}

func (ctrl *controller) Prepare(c *gin.Context) {
	var req PrepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, err := userIDFromContext(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	resp, err := ctrl.service.PrepareByName(c.Request.Context(), userID, req.EventName, req.Quantity)
	if err != nil {
		status, message := holdErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking prepared successfully", resp, nil)
}

func (ctrl *controller) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	reply, err := ctrl.service.Confirm(c.Request.Context(), req.HoldID)
	if err != nil {
		status, message := holdErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking confirmed successfully", gin.H{"reply": reply}, nil)
}

// holdErrorStatus maps the prepare/confirm error set to HTTP codes. Expired
// and consumed holds are indistinguishable on purpose.
func holdErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, bookings.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, holds.ErrHoldNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, bookings.ErrInsufficientTickets):
		return http.StatusConflict, err.Error()
	case errors.Is(err, bookings.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "Ticket storage temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Failed to process booking"
	}
}

func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("user not authenticated")
	}
	return uuid.Parse(userID.(string))
}
