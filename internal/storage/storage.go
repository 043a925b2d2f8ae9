package storage

import (
	"context"
	"errors"

	"github.com/fintrackhq/fintrack-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations needed by handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	// ListUsers returns every non-admin account.
	ListUsers(ctx context.Context) ([]models.User, error)
	// DeleteUser removes the user; owned transactions cascade with it.
	DeleteUser(ctx context.Context, id string) error
}

// TransactionStore captures transaction persistence operations. List order is
// created-at descending, which is what gives "last transaction" its meaning
// for the chat assistant.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	// DeleteTransaction is idempotent: deleting an id that no longer exists
	// is not an error.
	DeleteTransaction(ctx context.Context, id string) error
}

// Store combines both record stores.
type Store interface {
	UserStore
	TransactionStore
}
