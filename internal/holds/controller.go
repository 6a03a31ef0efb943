package holds

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tigertix/internal/bookings"
	"tigertix/internal/events"
	"tigertix/internal/shared/utils/response"
)

// Controller is the direct two-phase booking API. It takes event ids; the
// chat endpoints cover the resolve-by-name flow.
type Controller interface {
	Prepare(c *gin.Context)
	Confirm(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
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

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	resp, err := ctrl.service.Prepare(c.Request.Context(), userID, eventID, req.Quantity)
	if err != nil {
		status, message := workflowErrorStatus(err)
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

	booking, err := ctrl.service.Confirm(c.Request.Context(), req.HoldID)
	if err != nil {
		status, message := workflowErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking confirmed successfully", booking.ToResponse(), nil)
}

// workflowErrorStatus maps prepare/confirm errors to HTTP codes. Expired and
// consumed holds are indistinguishable on purpose.
func workflowErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, bookings.ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, events.ErrEventNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrHoldNotFound):
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
