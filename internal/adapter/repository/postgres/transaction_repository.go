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

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository create", logger.Fields{
		"senderAccountId":   transaction.SenderAccountID,
		"receiverAccountId": transaction.ReceiverAccountID,
		"transactionType":   transaction.TransactionType,
	})

	const query = `
INSERT INTO transactions (
	sender_account_id,
	receiver_account_id,
	transaction_type,
	amount,
	description
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	var id string
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.SenderAccountID,
		transaction.ReceiverAccountID,
		transaction.TransactionType,
		transaction.Amount,
		transaction.Description,
	).Scan(&id, &createdAt); err != nil {
		logger.Error("transaction repository create failed", err, logger.Fields{
			"senderAccountId": transaction.SenderAccountID,
		})
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	transaction.ID = id
	transaction.CreatedAt = createdAt

	return transaction, nil
}

// PostTransfer records the transfer and moves the money in one database
// transaction. The conditional debit doubles as the per-account serialization
// guard: its row lock orders concurrent transfers touching the same sender,
// and a balance made stale by a winner matches zero rows, rolling the whole
// posting back.
func (r *TransactionRepository) PostTransfer(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	logger.Info("transaction repository post transfer", logger.Fields{
		"senderAccountId":   transaction.SenderAccountID,
		"receiverAccountId": transaction.ReceiverAccountID,
		"amount":            transaction.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transaction repository begin tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `
INSERT INTO transactions (
	sender_account_id,
	receiver_account_id,
	transaction_type,
	amount,
	description
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	var id string
	var createdAt time.Time
	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		transaction.SenderAccountID,
		transaction.ReceiverAccountID,
		transaction.TransactionType,
		transaction.Amount,
		transaction.Description,
	).Scan(&id, &createdAt); err != nil {
		logger.Error("transaction repository insert transfer failed", err, logger.Fields{
			"senderAccountId": transaction.SenderAccountID,
		})
		return domain.Transaction{}, fmt.Errorf("insert transfer transaction: %w", err)
	}

	const debitSenderQuery = `
UPDATE accounts
SET balance = balance - $2::numeric
WHERE id = $1
  AND balance >= $2::numeric`
	var debited int64
	debited, err = execRows(ctx, tx, debitSenderQuery, transaction.SenderAccountID, transaction.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if debited == 0 {
		err = commons.ErrInsufficientBalance
		return domain.Transaction{}, err
	}

	const creditReceiverQuery = `
UPDATE accounts
SET balance = balance + $2::numeric
WHERE id = $1`
	var credited int64
	credited, err = execRows(ctx, tx, creditReceiverQuery, transaction.ReceiverAccountID, transaction.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	if credited == 0 {
		err = commons.ErrRecordNotFound
		return domain.Transaction{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transaction repository commit tx failed", err, nil)
		return domain.Transaction{}, fmt.Errorf("commit transfer transaction: %w", err)
	}

	transaction.ID = id
	transaction.CreatedAt = createdAt

	logger.Info("transaction repository post transfer success", logger.Fields{
		"transactionId":     transaction.ID,
		"senderAccountId":   transaction.SenderAccountID,
		"receiverAccountId": transaction.ReceiverAccountID,
	})
	return transaction, nil
}

func (r *TransactionRepository) ListByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	const query = `
SELECT id,
       sender_account_id,
       receiver_account_id,
       transaction_type,
       amount,
       description,
       created_at
FROM transactions
WHERE sender_account_id = $1
   OR receiver_account_id = $1
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		var transaction domain.Transaction
		var description sql.NullString
		if err := rows.Scan(
			&transaction.ID,
			&transaction.SenderAccountID,
			&transaction.ReceiverAccountID,
			&transaction.TransactionType,
			&transaction.Amount,
			&description,
			&transaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if description.Valid {
			value := description.String
			transaction.Description = &value
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func execRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute posting statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return rows, nil
}
