package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tigertix/internal/shared/utils/response"
)

type Controller interface {
	Purchase(c *gin.Context)
	CancelBooking(c *gin.Context)
	GetBooking(c *gin.Context)
	GetUserBookings(c *gin.Context)
	GetEventBookings(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Purchase(c *gin.Context) {
	var req PurchaseRequest
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

	booking, err := ctrl.service.Purchase(c.Request.Context(), userID, eventID, req.Quantity)
	if err != nil {
		status, message := purchaseErrorStatus(err)
		response.RespondJSON(c, "error", status, message, nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Purchase completed successfully", booking.ToResponse(), nil)
}

func (ctrl *controller) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := ctrl.service.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case errors.Is(err, ErrStorageUnavailable):
			response.RespondJSON(c, "error", http.StatusServiceUnavailable, "Ticket storage temporarily unavailable", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, err.Error())
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking.ToResponse(), nil)
}

func (ctrl *controller) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking ID", nil, err.Error())
		return
	}

	booking, err := ctrl.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking.ToResponse(), nil)
}

func (ctrl *controller) GetUserBookings(c *gin.Context) {
	userID, err := userIDFromContext(c)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, totalCount, err := ctrl.service.GetUserBookings(c.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = b.ToResponse()
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings":    responses,
		"total_count": totalCount,
	}, nil)
}

func (ctrl *controller) GetEventBookings(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	bookings, summary, err := ctrl.service.GetEventBookings(c.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list event bookings", nil, err.Error())
		return
	}

	responses := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		responses[i] = b.ToResponse()
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event bookings retrieved successfully", gin.H{
		"bookings": responses,
		"summary":  summary,
	}, nil)
}

// purchaseErrorStatus maps inventory errors to HTTP codes. Insufficient
// inventory and missing events must stay distinguishable for callers.
func purchaseErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrInsufficientTickets):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrStorageUnavailable):
		// Retryable: the request was fine, the backend was not
		return http.StatusServiceUnavailable, "Ticket storage temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Failed to complete purchase"
	}
}

func userIDFromContext(c *gin.Context) (uuid.UUID, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("user not authenticated")
	}
	return uuid.Parse(userID.(string))
}
