package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type NewAccountRequest struct {
	InitialBalance string `json:"initialBalance,omitempty"`
}

func (r NewAccountRequest) Validate() error {
	if strings.TrimSpace(r.InitialBalance) == "" {
		return nil
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(r.InitialBalance)); err != nil {
		return errors.New("initialBalance must be numeric")
	}
	return nil
}

type AccountResponse struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customerId"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	CreatedAt     string `json:"createdAt"`
}
