package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SystemHandler serves health, discovery and fallback error responses.
type SystemHandler struct {
	environment string
	startedAt   time.Time
	now         func() time.Time
	responder   *Responder
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime"`
	Environment string    `json:"environment"`
}

// NewSystemHandler creates a handler reporting uptime since startedAt.
func NewSystemHandler(environment string, startedAt time.Time, responder *Responder) *SystemHandler {
	return &SystemHandler{
		environment: environment,
		startedAt:   startedAt,
		now:         time.Now,
		responder:   responder,
	}
}

// Health handles GET /health requests.
func (h *SystemHandler) Health(c echo.Context) error {
	now := h.now()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:      "OK",
		Timestamp:   now.UTC(),
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.environment,
	})
}

// Welcome handles GET /api/v1/ requests.
func (h *SystemHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome to the OutFlo Campaign Management REST API",
		"version": "1.0.0",
		"endpoints": map[string]map[string]string{
			"campaigns": {
				"GET /campaigns":        "Fetch all campaigns (excluding deleted)",
				"GET /campaigns/:id":    "Fetch a single campaign by ID",
				"POST /campaigns":       "Create a new campaign",
				"PUT /campaigns/:id":    "Update campaign details (including status)",
				"DELETE /campaigns/:id": "Delete campaign (set status to Deleted)",
			},
			"accounts": {
				"GET /accounts":                           "Fetch all LinkedIn accounts",
				"GET /accounts/:id":                       "Fetch a single account by ID",
				"POST /accounts":                          "Create an account",
				"POST /accounts/import":                   "Import accounts from a CSV file",
				"POST /accounts/:id/personalized-message": "Generate a message for a stored account",
			},
			"messages": {
				"POST /personalized-message": "Generate personalized LinkedIn outreach message",
			},
		},
	})
}

// HTTPErrorHandler renders routing errors and recovered panics with the API envelope.
func (h *SystemHandler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Internal != nil {
			if inner, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = inner
			}
		}

		switch httpErr.Code {
		case http.StatusNotFound:
			path := c.Request().URL.Path
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(http.StatusNotFound)
				return
			}
			_ = Error(c, http.StatusNotFound, fmt.Sprintf("Route %s not found", path),
				"Please check the API documentation for available endpoints")
			return
		case http.StatusInternalServerError:
		default:
			_ = Error(c, httpErr.Code, httpMessage(httpErr))
			return
		}
	}

	_ = h.responder.Internal(c, err, "Internal server error")
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok && msg != "" {
		return msg
	}
	return strings.TrimSpace(http.StatusText(err.Code))
}
