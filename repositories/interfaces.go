package repositories

import (
	"context"
	"errors"

	"github.com/baristalab/drinks-api/models"
	"github.com/google/uuid"
)

// ErrDrinkNotFound is returned when a drink id does not exist
var ErrDrinkNotFound = errors.New("drink not found")

// DrinkRepository defines data access for the drinks catalog
type DrinkRepository interface {
	// List returns all drinks ordered by creation time
	List(ctx context.Context) ([]*models.Drink, error)

	// GetByID retrieves a drink by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Drink, error)

	// Create creates a new drink
	Create(ctx context.Context, drink *models.Drink) error

	// Update updates an existing drink
	Update(ctx context.Context, drink *models.Drink) error

	// Delete removes a drink by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
}

// TransactionManager manages database transactions
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}
