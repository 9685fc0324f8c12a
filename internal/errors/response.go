package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the payload under the "errors" key of every failure response.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Errors ErrorBody `json:"errors"`
}

// RespondWithError writes the uniform failure envelope.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Errors: ErrorBody{
			Code:    errorCode,
			Message: message,
		},
	})
}

// Shortcut helpers for the handful of statuses this service uses.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func UnprocessableEntity(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal error occurred. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithValidationError reports per-field validation failures.
func RespondWithValidationError(c *gin.Context, statusCode int, fields map[string]string) {
	c.JSON(statusCode, ErrorResponse{
		Errors: ErrorBody{
			Code:    ValidationInvalidInput,
			Message: "Input is not valid",
			Fields:  fields,
		},
	})
}
