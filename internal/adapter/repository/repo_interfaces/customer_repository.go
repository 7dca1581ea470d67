package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-ledger/internal/domain"
)

type CustomerRepository interface {
	// Create persists a new customer; a duplicate email is reported as
	// commons.ErrEmailAlreadyExists.
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
}
