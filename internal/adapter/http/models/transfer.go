package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type MoneyTransferRequest struct {
	Amount                string `json:"amount"`
	ReceiverAccountNumber string `json:"receiverAccountNumber"`
	Description           string `json:"description,omitempty"`
}

// Validate checks shape only. Amount sign and balance sufficiency are domain
// rules with a fixed precedence and stay in the transfer service.
func (r MoneyTransferRequest) Validate() error {
	var errs []string

	amount := strings.TrimSpace(r.Amount)
	if amount == "" {
		errs = append(errs, "amount is required")
	} else if _, err := decimal.NewFromString(amount); err != nil {
		errs = append(errs, "amount must be numeric")
	}

	receiver := strings.TrimSpace(r.ReceiverAccountNumber)
	if receiver == "" {
		errs = append(errs, "receiverAccountNumber is required")
	} else if !isSixteenDigitAccountNumber(receiver) {
		errs = append(errs, "receiverAccountNumber must be exactly 16 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func isSixteenDigitAccountNumber(accountNumber string) bool {
	if len(accountNumber) != 16 {
		return false
	}

	for _, ch := range accountNumber {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}

type TransactionResponse struct {
	ID                string `json:"id"`
	SenderAccountID   string `json:"senderAccountId"`
	ReceiverAccountID string `json:"receiverAccountId"`
	TransactionType   string `json:"transactionType"`
	Amount            string `json:"amount"`
	Description       string `json:"description,omitempty"`
	CreatedAt         string `json:"createdAt"`
}
