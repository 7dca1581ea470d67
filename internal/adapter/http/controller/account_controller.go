package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, customerID string, req models.NewAccountRequest) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, customerID string) (commons.Response[[]models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string, customerID string) (commons.Response[models.AccountResponse], error)
	DeleteAccount(ctx context.Context, accountID string, customerID string) (commons.Response[struct{}], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if authMiddleware != nil {
			mux.Handle(pattern, authMiddleware(handler))
			return
		}
		mux.Handle(pattern, handler)
	}

	register("POST /accounts", c.createAccount)
	register("GET /accounts", c.listAccounts)
	register("GET /accounts/{accountId}", c.getAccount)
	register("DELETE /accounts/{accountId}", c.deleteAccount)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	var req models.NewAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.CreateAccount(r.Context(), customerID, req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	if response.Data != nil {
		w.Header().Set("Location", "/accounts/"+response.Data.ID)
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	response, err := c.service.ListAccounts(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	response, err := c.service.GetAccount(r.Context(), r.PathValue("accountId"), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("accountId"), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
