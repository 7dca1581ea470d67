package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/api-sage/bank-ledger/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type TransferService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
	accountResolver service_interfaces.AccountResolver
}

func NewTransferService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	accountResolver service_interfaces.AccountResolver,
) *TransferService {
	return &TransferService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		accountResolver: accountResolver,
	}
}

// Transfer validates and posts one money movement. The validation order is
// fixed: sender resolution, receiver resolution, balance sufficiency, amount
// sign. Nothing is mutated before every check has passed.
func (s *TransferService) Transfer(ctx context.Context, customerID string, senderAccountID string, req models.MoneyTransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"customerId":      customerID,
		"senderAccountId": senderAccountID,
		"payload":         logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", "amount must be numeric"), err
	}

	senderAccount, err := s.accountResolver.ResolveOwnedAccount(ctx, senderAccountID, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrAccountNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	// Any existing account number is a legal destination, including one owned
	// by a different customer.
	receiverAccount, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(req.ReceiverAccountNumber))
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Account not found by account number"), commons.ErrAccountNotFoundByNumber
		}
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if senderAccount.Balance.LessThan(amount) {
		err := commons.ErrInsufficientBalance
		return commons.ErrorResponse[models.TransactionResponse]("Insufficient balance", err.Error()), err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		err := commons.ErrInvalidAmount
		return commons.ErrorResponse[models.TransactionResponse]("Invalid amount", err.Error()), err
	}

	var description *string
	if trimmed := strings.TrimSpace(req.Description); trimmed != "" {
		description = &trimmed
	}

	posted, err := s.transactionRepo.PostTransfer(ctx, domain.Transaction{
		SenderAccountID:   senderAccount.ID,
		ReceiverAccountID: receiverAccount.ID,
		TransactionType:   domain.TransactionTypeTransfer,
		Amount:            amount,
		Description:       description,
	})
	if err != nil {
		if errors.Is(err, commons.ErrInsufficientBalance) {
			// A concurrent transfer won the balance; the posting rolled back.
			return commons.ErrorResponse[models.TransactionResponse]("Insufficient balance", err.Error()), err
		}
		logger.Error("transfer service posting failed", err, logger.Fields{
			"senderAccountId":   senderAccount.ID,
			"receiverAccountId": receiverAccount.ID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	logger.Info("transfer service transfer success", logger.Fields{
		"transactionId":     posted.ID,
		"senderAccountId":   posted.SenderAccountID,
		"receiverAccountId": posted.ReceiverAccountID,
	})

	return commons.SuccessResponse("transfer completed successfully", mapTransactionToResponse(posted)), nil
}

func (s *TransferService) ListTransactions(ctx context.Context, accountID string, customerID string) (commons.Response[[]models.TransactionResponse], error) {
	account, err := s.accountResolver.ResolveOwnedAccount(ctx, accountID, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrAccountNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("Account not found"), err
		}
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	transactions, err := s.transactionRepo.ListByAccountID(ctx, account.ID)
	if err != nil {
		logger.Error("transfer service list transactions failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		responses = append(responses, mapTransactionToResponse(transaction))
	}

	return commons.SuccessResponse("transactions fetched successfully", responses), nil
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	response := models.TransactionResponse{
		ID:                transaction.ID,
		SenderAccountID:   transaction.SenderAccountID,
		ReceiverAccountID: transaction.ReceiverAccountID,
		TransactionType:   string(transaction.TransactionType),
		Amount:            transaction.Amount.String(),
		CreatedAt:         transaction.CreatedAt.Format(time.RFC3339),
	}
	if transaction.Description != nil {
		response.Description = *transaction.Description
	}
	return response
}
