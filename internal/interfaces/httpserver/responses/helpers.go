package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/infrastructure/store"
	"voxassist/call-api/internal/utils/platformerrors"
)

// HandleError handles errors and writes appropriate HTTP responses.
// It maps registry and domain errors to HTTP status codes before
// falling back to the platform error handler.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()

	if errors.Is(err, store.ErrCallNotFound) {
		platformerrors.WriteNotFound(c, message)
		return
	}
	if errors.Is(err, store.ErrCallAlreadyExists) || errors.Is(err, call.ErrCallNotActive) {
		platformerrors.WriteConflict(c, message)
		return
	}
	if errors.Is(err, call.ErrCallerNumberRequired) || errors.Is(err, faq.ErrQuestionRequired) {
		platformerrors.WriteValidationError(c, err.Error())
		return
	}
	if errors.Is(err, agent.ErrNoAgentAvailable) {
		HandleErrorWithStatus(c, http.StatusServiceUnavailable, err, "no human agent is currently available")
		return
	}

	platformerrors.WriteError(c, err, logger)
}

// HandleErrorWithStatus handles errors with a custom HTTP status code.
func HandleErrorWithStatus(c *gin.Context, statusCode int, _ error, message string) {
	c.JSON(statusCode, platformerrors.HTTPErrorResponse{
		Error: &platformerrors.HTTPErrorDetail{
			Message: message,
			Type:    statusToErrorType(statusCode),
		},
	})
}

// HandleNewError creates and writes a new typed error response.
// Use this for route-level errors like validation failures.
func HandleNewError(c *gin.Context, errorType platformerrors.ErrorType, message string) {
	status := platformerrors.ErrorTypeToHTTPStatus(errorType)
	c.JSON(status, platformerrors.HTTPErrorResponse{
		Error: &platformerrors.HTTPErrorDetail{
			Message: message,
			Type:    platformerrors.ErrorTypeString(errorType),
		},
	})
}

// statusToErrorType converts HTTP status code to error type string.
func statusToErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized_error"
	case http.StatusForbidden:
		return "forbidden_error"
	case http.StatusNotFound:
		return "not_found_error"
	case http.StatusConflict:
		return "conflict_error"
	case http.StatusTooManyRequests:
		return "rate_limited_error"
	case http.StatusServiceUnavailable:
		return "unavailable_error"
	default:
		return "internal_error"
	}
}
