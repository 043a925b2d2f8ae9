package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-be/internal/models"
	"github.com/fintrackhq/fintrack-be/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users and transactions.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS transactions_user_idx ON transactions (user_id, created_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row, assigning an id.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (id, name, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, name, email, password_hash, role, created_at, updated_at;
	`
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	row := s.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users WHERE email = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, email))
}

// UpdateUser persists name, email, and password hash changes.
func (s *Store) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	UPDATE users SET name = $2, email = $3, password_hash = $4, updated_at = NOW()
	WHERE id = $1
	RETURNING id, name, email, password_hash, role, created_at, updated_at;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash)
	updated, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return updated, nil
}

// ListUsers returns all non-admin accounts, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users WHERE role <> 'admin'
	ORDER BY created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser removes the user row; the transactions foreign key cascades.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

// CreateTransaction inserts a transaction, assigning an id and rounding the
// amount to currency precision.
func (s *Store) CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	const query = `
	INSERT INTO transactions (id, user_id, type, amount, description, category, date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, user_id, type, amount, description, category, date, created_at, updated_at;
	`
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	row := s.pool.QueryRow(ctx, query,
		tx.ID, tx.UserID, tx.Type, roundAmount(tx.Amount), tx.Description, tx.Category, tx.Date)
	return scanTransaction(row)
}

// GetTransaction fetches a transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	const query = `
	SELECT id, user_id, type, amount, description, category, date, created_at, updated_at
	FROM transactions WHERE id = $1;
	`
	return scanTransaction(s.pool.QueryRow(ctx, query, id))
}

// ListTransactions returns all of the user's transactions, newest-created
// first. The assistant's "delete last transaction" depends on this order.
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	const query = `
	SELECT id, user_id, type, amount, description, category, date, created_at, updated_at
	FROM transactions WHERE user_id = $1
	ORDER BY created_at DESC;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// UpdateTransaction persists changes to an existing transaction.
func (s *Store) UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	const query = `
	UPDATE transactions
	SET type = $2, amount = $3, description = $4, category = $5, date = $6, updated_at = NOW()
	WHERE id = $1
	RETURNING id, user_id, type, amount, description, category, date, created_at, updated_at;
	`
	row := s.pool.QueryRow(ctx, query,
		tx.ID, tx.Type, roundAmount(tx.Amount), tx.Description, tx.Category, tx.Date)
	return scanTransaction(row)
}

// DeleteTransaction removes a transaction. Deleting an id that does not
// exist is not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}

// roundAmount clamps an amount to two-decimal currency precision before it
// hits the NUMERIC column.
func roundAmount(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var tx models.Transaction
	var amount decimal.Decimal
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &amount, &tx.Description, &tx.Category, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Transaction{}, storage.ErrNotFound
		}
		return models.Transaction{}, err
	}
	tx.Amount = amount.InexactFloat64()
	return tx, nil
}
