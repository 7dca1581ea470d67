package controller

import (
	"context"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
)

type CustomerService interface {
	GetAuthenticatedCustomer(ctx context.Context, customerID string) (commons.Response[models.CustomerResponse], error)
}

type CustomerController struct {
	service CustomerService
}

func NewCustomerController(service CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	var handler http.Handler = http.HandlerFunc(c.me)
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("GET /customers/me", handler)
}

func (c *CustomerController) me(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	response, err := c.service.GetAuthenticatedCustomer(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
