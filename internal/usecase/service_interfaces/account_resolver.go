package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/internal/domain"
)

// AccountResolver is the lookup/validation routine the transfer service
// borrows from the account service to resolve and authorize the sender.
type AccountResolver interface {
	// ResolveOwnedAccount returns commons.ErrAccountNotFound when no account
	// with the given id is owned by the given customer; existence and
	// ownership are deliberately not distinguished.
	ResolveOwnedAccount(ctx context.Context, accountID string, customerID string) (domain.Account, error)
}
