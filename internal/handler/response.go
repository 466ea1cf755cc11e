package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quoting/internal/pricing"
	"quoting/internal/repository"
	"quoting/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var inputErr *pricing.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: inputErr.Field})
		return
	}

	var cfgErr *pricing.ConfigurationError
	if errors.As(err, &cfgErr) {
		// The configuration, not the request, is broken; the caller can't
		// fix it by resubmitting.
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Field: cfgErr.Field})
		return
	}

	c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidConfigID),
		errors.Is(err, service.ErrInvalidQuoteID),
		errors.Is(err, service.ErrEmptyBatch):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrConfigurationInactive):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
