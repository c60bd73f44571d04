package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/outreach-campaigns/api/internal/dto"
	"github.com/octobees/outreach-campaigns/api/internal/service"
)

// AccountsHandler exposes LinkedIn account endpoints.
type AccountsHandler struct {
	service   *service.AccountsService
	responder *Responder
}

// NewAccountsHandler wires a handler backed by the accounts service.
func NewAccountsHandler(service *service.AccountsService, responder *Responder) *AccountsHandler {
	return &AccountsHandler{service: service, responder: responder}
}

// List handles GET /accounts requests.
func (h *AccountsHandler) List(c echo.Context) error {
	accounts, err := h.service.List(c.Request().Context())
	if err != nil {
		return h.responder.Fail(c, err, "Failed to retrieve accounts")
	}
	return Success(c, http.StatusOK, fmt.Sprintf("Found %d accounts", len(accounts)), accounts)
}

// Get handles GET /accounts/:id requests.
func (h *AccountsHandler) Get(c echo.Context) error {
	account, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.responder.Fail(c, err, "Failed to retrieve account")
	}
	return Success(c, http.StatusOK, "", account)
}

// Create handles POST /accounts requests.
func (h *AccountsHandler) Create(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "Invalid request body")
	}

	account, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return h.responder.Fail(c, err, "Failed to create account")
	}
	return Success(c, http.StatusCreated, "Account created successfully", account)
}

// Import handles POST /accounts/import requests carrying a multipart CSV file.
func (h *AccountsHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "Missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "Unable to open file")
	}
	defer file.Close()

	summary, err := h.service.ImportCSV(c.Request().Context(), file)
	if err != nil {
		return h.responder.Fail(c, err, "Failed to process csv")
	}

	return Success(c, http.StatusOK, "Accounts CSV processed", summary)
}
