package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/tradui/internal/entities"
	"github.com/mrlokans/tradui/internal/logger"
	"github.com/mrlokans/tradui/internal/platform"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListResponse wraps a list with its length.
type ListResponse struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log *logger.Logger, err error, context string) {
	log.Error("Internal error", "context", context, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondFailure maps store errors onto status codes. Fatal user errors carry a message
// meant for the user, everything else is hidden behind a 500.
func respondFailure(c *gin.Context, log *logger.Logger, err error, context string) {
	var fatal *platform.FatalUserError
	if errors.As(err, &fatal) {
		log.Warn("Request failed", "context", context, "error", err)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: fatal.Message, Code: "fatal"})
		return
	}
	respondInternalError(c, log, err, context)
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// --- Success Response Helpers ---

// respondList sends a 200 OK response with a list payload.
func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, ListResponse{Data: items, Total: len(items)})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}

// parseLanguageQuery reads a language from the query string. An absent parameter yields
// fallback; an empty fallback makes the parameter required.
func parseLanguageQuery(c *gin.Context, paramName string, fallback entities.Language) (entities.Language, bool) {
	raw := c.Query(paramName)
	if raw == "" {
		if fallback == "" {
			respondBadRequest(c, paramName+" is required")
			return "", false
		}
		return fallback, true
	}

	lang, err := entities.ParseLanguage(raw)
	if err != nil {
		respondBadRequest(c, err.Error())
		return "", false
	}
	return lang, true
}

// requireQuery reads a non-empty query parameter.
func requireQuery(c *gin.Context, paramName string) (string, bool) {
	value := c.Query(paramName)
	if value == "" {
		respondBadRequest(c, paramName+" is required")
		return "", false
	}
	return value, true
}
