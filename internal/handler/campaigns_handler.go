package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/repository"
	"github.com/octobees/outreach-campaigns/api/internal/service"
)

// CampaignsHandler exposes campaign CRUD endpoints.
type CampaignsHandler struct {
	service   *service.CampaignsService
	responder *Responder
}

// NewCampaignsHandler creates a new handler instance.
func NewCampaignsHandler(service *service.CampaignsService, responder *Responder) *CampaignsHandler {
	return &CampaignsHandler{service: service, responder: responder}
}

// List handles GET /campaigns requests.
func (h *CampaignsHandler) List(c echo.Context) error {
	campaigns, err := h.service.List(c.Request().Context(), repository.ReadOptions{})
	if err != nil {
		return h.responder.Fail(c, err, "Failed to retrieve campaigns")
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Found %d campaigns", len(campaigns)), campaigns)
}

// Get handles GET /campaigns/:id requests.
func (h *CampaignsHandler) Get(c echo.Context) error {
	opts := repository.ReadOptions{IncludeDeleted: parseBoolQuery(c.QueryParam("include_deleted"))}

	campaign, err := h.service.GetByID(c.Request().Context(), c.Param("id"), opts)
	if err != nil {
		return h.responder.Fail(c, err, "Failed to retrieve campaign")
	}
	return Success(c, http.StatusOK, "", campaign)
}

// Create handles POST /campaigns requests.
func (h *CampaignsHandler) Create(c echo.Context) error {
	var req dto.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	campaign, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return h.responder.Fail(c, err, "Failed to create campaign")
	}
	return Success(c, http.StatusCreated, "Campaign created successfully", campaign)
}

// Update handles PUT /campaigns/:id requests.
func (h *CampaignsHandler) Update(c echo.Context) error {
	var req dto.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	campaign, err := h.service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return h.responder.Fail(c, err, "Failed to update campaign")
	}
	return Success(c, http.StatusOK, "Campaign updated successfully", campaign)
}

// Delete handles DELETE /campaigns/:id requests.
func (h *CampaignsHandler) Delete(c echo.Context) error {
	campaign, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.responder.Fail(c, err, "Failed to delete campaign")
	}
	return Success(c, http.StatusOK, "Campaign deleted successfully", campaign)
}

func parseBoolQuery(input string) bool {
	value, err := strconv.ParseBool(input)
	return err == nil && value
}
