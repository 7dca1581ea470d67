package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/internal/domain"
)

// AccountRepository is the account store contract. Implementations must
// serialize concurrent balance writes per account; the conditional debit in
// PostTransfer (see TransactionRepository) relies on it.
type AccountRepository interface {
	// Create persists a new account. A collision on the account number
	// uniqueness constraint is reported as commons.ErrDuplicateAccountNumber
	// so the caller can regenerate.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	// GetByIDAndCustomerID returns commons.ErrRecordNotFound both when the
	// account does not exist and when it is owned by another customer.
	GetByIDAndCustomerID(ctx context.Context, accountID string, customerID string) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error)
	// Delete removes the account and its INITIAL transaction, if one exists,
	// as a single atomic unit.
	Delete(ctx context.Context, accountID string) error
}
