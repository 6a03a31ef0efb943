// Package response defines the JSON envelope every handler replies with,
// so clients can branch on status without inspecting HTTP codes.
package response

import "github.com/gin-gonic/gin"

type StandardApiResponse struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"` // validation details or wrapped error text
}

// RespondJSON writes the envelope with the given HTTP code. Handlers pass
// nil for whichever of data and errors does not apply.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
