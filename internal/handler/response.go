package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidSource),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidSeatCount),
		errors.Is(err, service.ErrInvalidRadius),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidBookingID):
		return http.StatusBadRequest

	// State conflicts and business-rule rejections
	case errors.Is(err, service.ErrBookingNotPending),
		errors.Is(err, service.ErrInsufficientSeats):
		return http.StatusConflict

	// Collaborator faults - retriable by the caller
	case errors.Is(err, service.ErrDistanceUnavailable),
		errors.Is(err, service.ErrSearchUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, service.ErrCollaboratorTimeout):
		return http.StatusGatewayTimeout

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
