package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hail/internal/repository"
	"hail/internal/service"
)

// ErrorResponse represents an error response. Kind lets clients react to the
// error class without parsing the message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code, kind := classifyError(err)
	c.JSON(code, ErrorResponse{Error: err.Error(), Kind: kind})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// classifyError maps service/repository errors to an HTTP status and an
// error kind: validation, not_found, permission, conflict or internal.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"

	case errors.Is(err, service.ErrEmptyPickupAddress),
		errors.Is(err, service.ErrEmptyDropAddress),
		errors.Is(err, service.ErrNegativeDistance),
		errors.Is(err, service.ErrTrafficOutOfRange),
		errors.Is(err, service.ErrInvalidPassengerID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrScheduledInPast):
		return http.StatusBadRequest, "validation"

	case errors.Is(err, service.ErrNotRideOwner),
		errors.Is(err, service.ErrNotAssignedDriver):
		return http.StatusForbidden, "permission"

	case errors.Is(err, service.ErrRideNotPending),
		errors.Is(err, service.ErrRideTerminal),
		errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict, "conflict"

	default:
		return http.StatusInternalServerError, "internal"
	}
}
