package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/baristalab/drinks-api/models"
	"github.com/baristalab/drinks-api/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DrinkRepository implements the repositories.DrinkRepository interface
type DrinkRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDrinkRepository creates a new drink repository
func NewDrinkRepository(db *DB, logger *zap.Logger) repositories.DrinkRepository {
	return &DrinkRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all drinks ordered by creation time
func (r *DrinkRepository) List(ctx context.Context) ([]*models.Drink, error) {
	query := `
		SELECT id, title, recipe, created_at, updated_at
		FROM drinks
		ORDER BY created_at
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drinks: %w", err)
	}
	defer rows.Close()

	var drinks []*models.Drink
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, drink)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drinks: %w", err)
	}

	return drinks, nil
}

// GetByID retrieves a drink by ID
func (r *DrinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Drink, error) {
	query := `
		SELECT id, title, recipe, created_at, updated_at
		FROM drinks
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	drink := &models.Drink{}
	var recipeJSON []byte

	err := executor.QueryRowContext(ctx, query, id).Scan(
		&drink.ID,
		&drink.Title,
		&recipeJSON,
		&drink.CreatedAt,
		&drink.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink: %w", err)
	}

	if err := json.Unmarshal(recipeJSON, &drink.Recipe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}

	return drink, nil
}

// Create creates a new drink
func (r *DrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	query := `
		INSERT INTO drinks (id, title, recipe, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	recipeJSON, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}

	executor := GetExecutor(ctx, r.db)
	_, err = executor.ExecContext(ctx, query,
		drink.ID,
		drink.Title,
		recipeJSON,
		drink.CreatedAt,
		drink.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create drink: %w", err)
	}

	r.logger.Debug("drink created", zap.String("id", drink.ID.String()), zap.String("title", drink.Title))
	return nil
}

// Update updates an existing drink
func (r *DrinkRepository) Update(ctx context.Context, drink *models.Drink) error {
	query := `
		UPDATE drinks
		SET title = $2, recipe = $3, updated_at = $4
		WHERE id = $1
	`

	recipeJSON, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		drink.ID,
		drink.Title,
		recipeJSON,
		drink.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update drink: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update drink: %w", err)
	}
	if rows == 0 {
		return repositories.ErrDrinkNotFound
	}

	r.logger.Debug("drink updated", zap.String("id", drink.ID.String()))
	return nil
}

// Delete removes a drink by ID
func (r *DrinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM drinks WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete drink: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete drink: %w", err)
	}
	if rows == 0 {
		return repositories.ErrDrinkNotFound
	}

	r.logger.Debug("drink deleted", zap.String("id", id.String()))
	return nil
}

// scanDrink scans one row into a Drink, decoding the recipe JSONB column
func scanDrink(rows *sql.Rows) (*models.Drink, error) {
	drink := &models.Drink{}
	var recipeJSON []byte

	if err := rows.Scan(
		&drink.ID,
		&drink.Title,
		&recipeJSON,
		&drink.CreatedAt,
		&drink.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan drink: %w", err)
	}

	if err := json.Unmarshal(recipeJSON, &drink.Recipe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}

	return drink, nil
}
