package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/adapter/http/middleware"
	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
)

type TransferService interface {
	Transfer(ctx context.Context, customerID string, senderAccountID string, req models.MoneyTransferRequest) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, accountID string, customerID string) (commons.Response[[]models.TransactionResponse], error)
}

type TransactionController struct {
	service TransferService
}

func NewTransactionController(service TransferService) *TransactionController {
	return &TransactionController{service: service}
}

// RegisterRoutes wires the transfer endpoints. The idempotency middleware
// wraps only the posting route; reads need no replay protection.
func (c *TransactionController) RegisterRoutes(
	mux *http.ServeMux,
	authMiddleware func(http.Handler) http.Handler,
	idempotencyMiddleware func(http.Handler) http.Handler,
) {
	var transfer http.Handler = http.HandlerFunc(c.transferMoney)
	if idempotencyMiddleware != nil {
		transfer = idempotencyMiddleware(transfer)
	}
	if authMiddleware != nil {
		transfer = authMiddleware(transfer)
	}
	mux.Handle("POST /accounts/{accountId}/transfer-money", transfer)

	var history http.Handler = http.HandlerFunc(c.transactionHistory)
	if authMiddleware != nil {
		history = authMiddleware(history)
	}
	mux.Handle("GET /accounts/{accountId}/transaction-history", history)
}

func (c *TransactionController) transferMoney(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	var req models.MoneyTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.service.Transfer(r.Context(), customerID, r.PathValue("accountId"), req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *TransactionController) transactionHistory(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !requireCustomerID(w, ok) {
		return
	}

	response, err := c.service.ListTransactions(r.Context(), r.PathValue("accountId"), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
