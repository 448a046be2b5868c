// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shawn0818/lebron-bot/internal/fetcher"
	"github.com/shawn0818/lebron-bot/internal/model"
	"github.com/shawn0818/lebron-bot/internal/service"
	"github.com/shawn0818/lebron-bot/internal/storage"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string             `json:"error"`
	Message     string             `json:"message,omitempty"`
	FieldErrors []model.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and
// payload. Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, model.ErrInvalidPayload) {
		return http.StatusBadGateway, ErrorPayload{
			Error:       "invalid_feed_payload",
			Message:     "the upstream feed payload failed validation",
			FieldErrors: model.PayloadFieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, service.ErrInvalidGameID):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_game_id"}
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, fetcher.ErrUpstream):
		return http.StatusBadGateway, ErrorPayload{Error: "upstream_error"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
