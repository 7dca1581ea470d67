package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// fakeStore backs the in-memory repository fakes with the same contract the
// Postgres adapters honor: conditional debits under a lock, all-or-nothing
// postings, uniqueness of account numbers and emails.
type fakeStore struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	transactions []domain.Transaction
	customers    map[string]*domain.Customer
	nextID       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:  make(map[string]*domain.Account),
		customers: make(map[string]*domain.Customer),
	}
}

func (s *fakeStore) newID(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) totalBalance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, account := range s.accounts {
		total = total.Add(account.Balance)
	}
	return total
}

func (s *fakeStore) transactionsSnapshot() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *fakeStore) balanceOf(accountID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.accounts[accountID]; ok {
		return account.Balance
	}
	return decimal.Zero
}

type fakeAccountRepo struct {
	store *fakeStore

	// duplicateCreates forces that many Create calls to report an account
	// number collision before succeeding.
	duplicateCreates int
	createAttempts   int
}

func (r *fakeAccountRepo) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.createAttempts++
	if r.duplicateCreates > 0 {
		r.duplicateCreates--
		return domain.Account{}, commons.ErrDuplicateAccountNumber
	}

	for _, existing := range r.store.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.Account{}, commons.ErrDuplicateAccountNumber
		}
	}

	account.ID = r.store.newID("acc")
	account.CreatedAt = time.Now()
	stored := account
	r.store.accounts[account.ID] = &stored

	return account, nil
}

func (r *fakeAccountRepo) GetByIDAndCustomerID(_ context.Context, accountID string, customerID string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok || account.CustomerID != customerID {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return *account, nil
}

func (r *fakeAccountRepo) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if account.AccountNumber == accountNumber {
			return *account, nil
		}
	}
	return domain.Account{}, commons.ErrRecordNotFound
}

func (r *fakeAccountRepo) ListByCustomerID(_ context.Context, customerID string) ([]domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	accounts := make([]domain.Account, 0)
	for _, account := range r.store.accounts {
		if account.CustomerID == customerID {
			accounts = append(accounts, *account)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, accountID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[accountID]; !ok {
		return commons.ErrRecordNotFound
	}

	kept := r.store.transactions[:0]
	for _, transaction := range r.store.transactions {
		if transaction.SenderAccountID == accountID && transaction.TransactionType == domain.TransactionTypeInitial {
			continue
		}
		kept = append(kept, transaction)
	}
	r.store.transactions = kept

	delete(r.store.accounts, accountID)
	return nil
}

type fakeTransactionRepo struct {
	store *fakeStore
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction.ID = r.store.newID("txn")
	transaction.CreatedAt = time.Now()
	r.store.transactions = append(r.store.transactions, transaction)
	return transaction, nil
}

func (r *fakeTransactionRepo) PostTransfer(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sender, ok := r.store.accounts[transaction.SenderAccountID]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	receiver, ok := r.store.accounts[transaction.ReceiverAccountID]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}

	if sender.Balance.LessThan(transaction.Amount) {
		return domain.Transaction{}, commons.ErrInsufficientBalance
	}

	sender.Balance = sender.Balance.Sub(transaction.Amount)
	receiver.Balance = receiver.Balance.Add(transaction.Amount)

	transaction.ID = r.store.newID("txn")
	transaction.CreatedAt = time.Now()
	r.store.transactions = append(r.store.transactions, transaction)
	return transaction, nil
}

func (r *fakeTransactionRepo) ListByAccountID(_ context.Context, accountID string) ([]domain.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transactions := make([]domain.Transaction, 0)
	for _, transaction := range r.store.transactions {
		if transaction.SenderAccountID == accountID || transaction.ReceiverAccountID == accountID {
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.customers {
		if existing.Email == customer.Email {
			return domain.Customer{}, commons.ErrEmailAlreadyExists
		}
	}

	customer.ID = r.store.newID("cus")
	customer.CreatedAt = time.Now()
	stored := customer
	r.store.customers[customer.ID] = &stored
	return customer, nil
}

func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, customer := range r.store.customers {
		if customer.Email == email {
			return *customer, nil
		}
	}
	return domain.Customer{}, commons.ErrRecordNotFound
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if customer, ok := r.store.customers[id]; ok {
		return *customer, nil
	}
	return domain.Customer{}, commons.ErrRecordNotFound
}
