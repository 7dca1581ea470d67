package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newAccountService(store *fakeStore) (*services.AccountService, *fakeAccountRepo, *fakeTransactionRepo) {
	accountRepo := &fakeAccountRepo{store: store}
	transactionRepo := &fakeTransactionRepo{store: store}
	return services.NewAccountService(accountRepo, transactionRepo), accountRepo, transactionRepo
}

func TestCreateAccountWithZeroBalanceCreatesNoInitialTransaction(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	response, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{InitialBalance: "0"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected account data in response")
	}
	if got := len(store.transactionsSnapshot()); got != 0 {
		t.Fatalf("expected no transactions for zero initial balance, got %d", got)
	}
}

func TestCreateAccountWithPositiveBalanceCreatesOneInitialTransaction(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	response, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{InitialBalance: "100"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	transactions := store.transactionsSnapshot()
	if len(transactions) != 1 {
		t.Fatalf("expected exactly one INITIAL transaction, got %d", len(transactions))
	}
	initial := transactions[0]
	if initial.TransactionType != domain.TransactionTypeInitial {
		t.Fatalf("expected INITIAL transaction, got %s", initial.TransactionType)
	}
	if initial.SenderAccountID != response.Data.ID || initial.ReceiverAccountID != response.Data.ID {
		t.Fatal("INITIAL transaction must have sender == receiver == new account")
	}
	if !initial.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected INITIAL amount 100, got %s", initial.Amount)
	}
}

func TestCreateAccountGeneratesSixteenDigitNumber(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	response, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	number := response.Data.AccountNumber
	if len(number) != 16 {
		t.Fatalf("expected 16-digit account number, got %q", number)
	}
	for _, ch := range number {
		if ch < '0' || ch > '9' {
			t.Fatalf("account number contains non-digit: %q", number)
		}
	}
}

func TestCreateAccountWithNegativeBalancePersistsNothing(t *testing.T) {
	store := newFakeStore()
	svc, accountRepo, _ := newAccountService(store)

	_, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{InitialBalance: "-1"})
	if !errors.Is(err, commons.ErrInvalidInitialBalance) {
		t.Fatalf("expected ErrInvalidInitialBalance, got %v", err)
	}
	if accountRepo.createAttempts != 0 {
		t.Fatal("no account create may be attempted for a negative initial balance")
	}
	if got := len(store.transactionsSnapshot()); got != 0 {
		t.Fatalf("expected no transactions, got %d", got)
	}
}

func TestCreateAccountRetriesOnAccountNumberCollision(t *testing.T) {
	store := newFakeStore()
	svc, accountRepo, _ := newAccountService(store)
	accountRepo.duplicateCreates = 2

	response, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{})
	if err != nil {
		t.Fatalf("create account after collisions: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected account data after retry")
	}
	if accountRepo.createAttempts != 3 {
		t.Fatalf("expected 3 create attempts, got %d", accountRepo.createAttempts)
	}
}

func TestCreateAccountGivesUpAfterBoundedCollisionRetries(t *testing.T) {
	store := newFakeStore()
	svc, accountRepo, _ := newAccountService(store)
	accountRepo.duplicateCreates = 100

	_, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{})
	if !errors.Is(err, commons.ErrDuplicateAccountNumber) {
		t.Fatalf("expected exhausted-retries error, got %v", err)
	}
	if accountRepo.createAttempts != 5 {
		t.Fatalf("expected 5 bounded attempts, got %d", accountRepo.createAttempts)
	}
}

func TestGetAccountConflatesMissingAndNotOwned(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	created, err := svc.CreateAccount(context.Background(), "cus-1", models.NewAccountRequest{InitialBalance: "50"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := svc.GetAccount(context.Background(), created.Data.ID, "cus-2"); !errors.Is(err, commons.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for foreign owner, got %v", err)
	}
	if _, err := svc.GetAccount(context.Background(), "acc-missing", "cus-1"); !errors.Is(err, commons.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound for missing account, got %v", err)
	}
}

func TestListAccountsReturnsOnlyOwnAccounts(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	ctx := context.Background()
	if _, err := svc.CreateAccount(ctx, "cus-1", models.NewAccountRequest{}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := svc.CreateAccount(ctx, "cus-1", models.NewAccountRequest{}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := svc.CreateAccount(ctx, "cus-2", models.NewAccountRequest{}); err != nil {
		t.Fatalf("create account: %v", err)
	}

	response, err := svc.ListAccounts(ctx, "cus-1")
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(*response.Data) != 2 {
		t.Fatalf("expected 2 accounts for cus-1, got %d", len(*response.Data))
	}
}

func TestDeleteAccountRemovesInitialTransaction(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	ctx := context.Background()
	created, err := svc.CreateAccount(ctx, "cus-1", models.NewAccountRequest{InitialBalance: "100"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if len(store.transactionsSnapshot()) != 1 {
		t.Fatal("expected INITIAL transaction before delete")
	}

	if _, err := svc.DeleteAccount(ctx, created.Data.ID, "cus-1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if got := len(store.transactionsSnapshot()); got != 0 {
		t.Fatalf("expected INITIAL transaction deleted with account, %d left", got)
	}
	if _, err := svc.GetAccount(ctx, created.Data.ID, "cus-1"); !errors.Is(err, commons.ErrAccountNotFound) {
		t.Fatal("expected account gone after delete")
	}
}

func TestDeleteAccountWithoutInitialTransactionRemovesOnlyAccount(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	ctx := context.Background()
	created, err := svc.CreateAccount(ctx, "cus-1", models.NewAccountRequest{})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := svc.DeleteAccount(ctx, created.Data.ID, "cus-1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
}

func TestDeleteAccountNotOwnedDeletesNothing(t *testing.T) {
	store := newFakeStore()
	svc, _, _ := newAccountService(store)

	ctx := context.Background()
	created, err := svc.CreateAccount(ctx, "cus-1", models.NewAccountRequest{InitialBalance: "100"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	if _, err := svc.DeleteAccount(ctx, created.Data.ID, "cus-2"); !errors.Is(err, commons.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if len(store.transactionsSnapshot()) != 1 {
		t.Fatal("foreign delete must not remove transactions")
	}
	if _, err := svc.GetAccount(ctx, created.Data.ID, "cus-1"); err != nil {
		t.Fatal("foreign delete must not remove the account")
	}
}
