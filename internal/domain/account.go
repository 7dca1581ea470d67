package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID            string
	CustomerID    string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
}
