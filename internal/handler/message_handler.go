package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/service"
)

const msgGenerationFailed = "Failed to generate personalized message"

// MessageHandler exposes the personalised message generator.
type MessageHandler struct {
	service   *service.MessageService
	responder *Responder
}

// NewMessageHandler creates a new handler instance.
func NewMessageHandler(service *service.MessageService, responder *Responder) *MessageHandler {
	return &MessageHandler{service: service, responder: responder}
}

// Generate handles POST /personalized-message requests.
func (h *MessageHandler) Generate(c echo.Context) error {
	var req dto.PersonalizedMessageRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	message, err := h.service.Generate(c.Request().Context(), req)
	if err != nil {
		return h.responder.Fail(c, err, msgGenerationFailed)
	}
	return Success(c, http.StatusOK, "Personalized message generated successfully", dto.PersonalizedMessageResponse{Message: message})
}

// GenerateForAccount handles POST /accounts/:id/personalized-message requests.
func (h *MessageHandler) GenerateForAccount(c echo.Context) error {
	message, err := h.service.GenerateForAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.responder.Fail(c, err, msgGenerationFailed)
	}
	return Success(c, http.StatusOK, "Personalized message generated successfully", dto.PersonalizedMessageResponse{Message: message})
}
