package commons

import "errors"

var ErrRecordNotFound = errors.New("Record not found")

var ErrInvalidInitialBalance = errors.New("Initial balance cannot be negative")
var ErrAccountNotFound = errors.New("Account not found")
var ErrAccountNotFoundByNumber = errors.New("Account not found by account number")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")

var ErrEmailAlreadyExists = errors.New("Email already exists")
var ErrInvalidCredentials = errors.New("Invalid email or password")

// ErrDuplicateAccountNumber signals that the generated account number lost the
// race against the store's uniqueness constraint; the caller regenerates.
var ErrDuplicateAccountNumber = errors.New("Account number already exists")
