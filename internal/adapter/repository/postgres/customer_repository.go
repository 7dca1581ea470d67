package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO customers (
	email,
	password_hash,
	first_name,
	last_name,
	phone_number,
	date_of_birth
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	var id string
	var createdAt time.Time

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.Email,
		customer.PasswordHash,
		customer.FirstName,
		customer.LastName,
		customer.PhoneNumber,
		customer.DateOfBirth,
	).Scan(&id, &createdAt); err != nil {
		if isUniqueViolation(err, "customers_email_key") {
			return domain.Customer{}, commons.ErrEmailAlreadyExists
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	customer.ID = id
	customer.CreatedAt = createdAt

	return customer, nil
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, phone_number, date_of_birth, created_at
FROM customers
WHERE email = $1`

	return r.scanCustomer(r.db.QueryRowContext(ctx, query, email))
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	const query = `
SELECT id, email, password_hash, first_name, last_name, phone_number, date_of_birth, created_at
FROM customers
WHERE id = $1`

	return r.scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *CustomerRepository) scanCustomer(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.Email,
		&customer.PasswordHash,
		&customer.FirstName,
		&customer.LastName,
		&customer.PhoneNumber,
		&customer.DateOfBirth,
		&customer.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return customer, nil
}
