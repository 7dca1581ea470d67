package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	customer_id,
	account_number,
	balance
) VALUES ($1, $2, $3)
RETURNING id, created_at`

	var id string
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.AccountNumber,
		account.Balance,
	).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err, "accounts_account_number_key") {
			return domain.Account{}, commons.ErrDuplicateAccountNumber
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt

	return account, nil
}

func (r *AccountRepository) GetByIDAndCustomerID(ctx context.Context, accountID string, customerID string) (domain.Account, error) {
	const query = `
SELECT id, customer_id, account_number, balance, created_at
FROM accounts
WHERE id = $1
  AND customer_id = $2`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, accountID, customerID))
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, customer_id, account_number, balance, created_at
FROM accounts
WHERE account_number = $1`

	return r.scanAccount(r.db.QueryRowContext(ctx, query, accountNumber))
}

func (r *AccountRepository) ListByCustomerID(ctx context.Context, customerID string) ([]domain.Account, error) {
	const query = `
SELECT id, customer_id, account_number, balance, created_at
FROM accounts
WHERE customer_id = $1
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.AccountNumber,
			&account.Balance,
			&account.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Delete(ctx context.Context, accountID string) error {
	logger.Info("account repository delete", logger.Fields{
		"accountId": accountID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("account repository begin delete tx failed", err, nil)
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The INITIAL transaction, when present, is owned by the account and goes
	// with it. At most one exists (partial unique index).
	const deleteInitialQuery = `
DELETE FROM transactions
WHERE sender_account_id = $1
  AND transaction_type = 'INITIAL'`
	if _, err = tx.ExecContext(ctx, deleteInitialQuery, accountID); err != nil {
		return fmt.Errorf("delete initial transaction: %w", err)
	}

	const deleteAccountQuery = `
DELETE FROM accounts
WHERE id = $1`
	var result sql.Result
	result, err = tx.ExecContext(ctx, deleteAccountQuery, accountID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	var rowsDeleted int64
	rowsDeleted, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if rowsDeleted == 0 {
		err = commons.ErrRecordNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("account repository commit delete tx failed", err, nil)
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	logger.Info("account repository delete success", logger.Fields{
		"accountId": accountID,
	})
	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}
