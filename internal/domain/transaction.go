package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeInitial  TransactionType = "INITIAL"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction records are immutable once created. INITIAL transactions have
// sender == receiver == the account they opened; at most one exists per
// account.
type Transaction struct {
	ID                string
	SenderAccountID   string
	ReceiverAccountID string
	TransactionType   TransactionType
	Amount            decimal.Decimal
	Description       *string
	CreatedAt         time.Time
}
