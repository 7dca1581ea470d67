package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	// PostTransfer persists the TRANSFER transaction, debits the sender and
	// credits the receiver as one atomic unit. The debit is conditional on
	// the sender balance covering the amount; losing that race aborts the
	// whole posting with commons.ErrInsufficientBalance.
	PostTransfer(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	// ListByAccountID returns every transaction where the account is sender
	// or receiver, in store order.
	ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}
