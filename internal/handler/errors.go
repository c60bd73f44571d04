package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/outreach-campaigns/api/internal/llm"
	"github.com/octobees/outreach-campaigns/api/internal/middleware"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
	"github.com/octobees/outreach-campaigns/api/internal/service"
)

const (
	msgProviderUnauthorized = "Invalid AI provider API key configuration"
	msgProviderRateLimited  = "Rate limit exceeded. Please try again later."
)

// Responder translates service errors into HTTP responses.
type Responder struct {
	development bool
	logger      *zap.Logger
}

// NewResponder creates a Responder. In development the underlying error text is
// returned to clients in the message field.
func NewResponder(development bool, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{development: development, logger: logger.Named("handler")}
}

// Fail writes the response for err. generic is used as the error text for
// failures that are not caused by the caller.
func (r *Responder) Fail(c echo.Context, err error, generic string) error {
	var (
		validationErr service.ValidationError
		csvErr        service.CSVValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		return Error(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &csvErr):
		return Error(c, http.StatusBadRequest, csvErr.Message)
	case errors.Is(err, repository.ErrCampaignNotFound):
		return Error(c, http.StatusNotFound, "Campaign not found")
	case errors.Is(err, repository.ErrAccountNotFound):
		return Error(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, repository.ErrAccountDuplicate):
		return Error(c, http.StatusConflict, "Account with this LinkedIn URL already exists")
	case errors.Is(err, llm.ErrUnauthorized):
		return Error(c, http.StatusUnauthorized, msgProviderUnauthorized)
	case errors.Is(err, llm.ErrRateLimited):
		return Error(c, http.StatusTooManyRequests, msgProviderRateLimited)
	}

	return r.Internal(c, err, generic)
}

// Internal logs err and writes a 500 response.
func (r *Responder) Internal(c echo.Context, err error, generic string) error {
	r.logger.Error(generic,
		zap.String("request_id", middleware.RequestIDFromContext(c)),
		zap.String("path", c.Request().URL.Path),
		zap.Error(err),
	)
	if r.development && err != nil {
		return Error(c, http.StatusInternalServerError, generic, err.Error())
	}
	return Error(c, http.StatusInternalServerError, generic)
}
