package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

const accountNumberLength = 16
const maxAccountNumberAttempts = 5

type AccountService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, customerID string, req models.NewAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"customerId": customerID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	initialBalance, err := parseInitialBalance(req.InitialBalance)
	if err != nil {
		logger.Error("account service create account invalid initial balance", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	// The store's uniqueness constraint on account_number is the authority;
	// a collision regenerates, within a bound.
	var created domain.Account
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, genErr := generateAccountNumber()
		if genErr != nil {
			logger.Error("account service generate account number failed", genErr, nil)
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), genErr
		}

		created, err = s.accountRepo.Create(ctx, domain.Account{
			CustomerID:    customerID,
			AccountNumber: number,
			Balance:       initialBalance,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, commons.ErrDuplicateAccountNumber) {
			logger.Error("account service create account repository failed", err, logger.Fields{
				"customerId": customerID,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}
	if err != nil {
		logger.Error("account service account number attempts exhausted", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	// An opening deposit of zero leaves no trace in the ledger.
	if initialBalance.IsPositive() {
		if _, err := s.transactionRepo.Create(ctx, domain.Transaction{
			SenderAccountID:   created.ID,
			ReceiverAccountID: created.ID,
			TransactionType:   domain.TransactionTypeInitial,
			Amount:            initialBalance,
		}); err != nil {
			logger.Error("account service create initial transaction failed", err, logger.Fields{
				"accountId": created.ID,
			})
			return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
		}
	}

	response := mapAccountToResponse(created)

	logger.Info("account service create account success", logger.Fields{
		"accountId":     response.ID,
		"accountNumber": response.AccountNumber,
		"customerId":    response.CustomerID,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID string) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, mapAccountToResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string, customerID string) (commons.Response[models.AccountResponse], error) {
	account, err := s.ResolveOwnedAccount(ctx, accountID, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrAccountNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to get account", "Unable to fetch account right now"), err
	}

	return commons.SuccessResponse("account fetched successfully", mapAccountToResponse(account)), nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, accountID string, customerID string) (commons.Response[struct{}], error) {
	logger.Info("account service delete account request", logger.Fields{
		"accountId":  accountID,
		"customerId": customerID,
	})

	account, err := s.ResolveOwnedAccount(ctx, accountID, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrAccountNotFound) {
			return commons.ErrorResponse[struct{}]("Account not found"), err
		}
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	if err := s.accountRepo.Delete(ctx, account.ID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("Account not found"), commons.ErrAccountNotFound
		}
		logger.Error("account service delete account repository failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[struct{}]("failed to delete account", "Unable to delete account right now"), err
	}

	logger.Info("account service delete account success", logger.Fields{
		"accountId": account.ID,
	})

	return commons.SuccessResponse("account deleted successfully", struct{}{}), nil
}

// ResolveOwnedAccount conflates "does not exist" and "owned by someone else"
// so that probing cannot reveal other customers' accounts.
func (s *AccountService) ResolveOwnedAccount(ctx context.Context, accountID string, customerID string) (domain.Account, error) {
	account, err := s.accountRepo.GetByIDAndCustomerID(ctx, accountID, customerID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Account{}, commons.ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

func parseInitialBalance(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}

	balance, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("initialBalance must be numeric")
	}
	if balance.IsNegative() {
		return decimal.Zero, commons.ErrInvalidInitialBalance
	}

	return balance, nil
}

func generateAccountNumber() (string, error) {
	var b strings.Builder
	b.Grow(accountNumberLength)
	for i := 0; i < accountNumberLength; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate account number: %w", err)
		}
		b.WriteByte(byte('0' + digit.Int64()))
	}
	return b.String(), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		CustomerID:    account.CustomerID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance.String(),
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
	}
}
