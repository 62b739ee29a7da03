package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"roombooking/internal/domain"
)

// StatusClientClosedRequest is the nginx convention for a request the client
// abandoned before a response was written.
const StatusClientClosedRequest = 499

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError maps a service error onto a status code and error code. Errors
// that match no known kind are reported as 500 and attached to the gin
// context so the request logger records them.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrInvalidSlot):
		Error(c, http.StatusUnprocessableEntity, "INVALID_SLOT", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicateName):
		Error(c, http.StatusConflict, "DUPLICATE_NAME", err.Error())
	case errors.Is(err, domain.ErrInUse):
		Error(c, http.StatusConflict, "RESOURCE_IN_USE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		Error(c, http.StatusConflict, "BOOKING_CONFLICT", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		_ = c.Error(err)
		Error(c, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out")
	case errors.Is(err, context.Canceled):
		Error(c, StatusClientClosedRequest, "REQUEST_CANCELED", "Request canceled")
	default:
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
