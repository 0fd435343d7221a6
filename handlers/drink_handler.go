package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/baristalab/drinks-api/app"
	"github.com/baristalab/drinks-api/models"
	"github.com/baristalab/drinks-api/repositories"
	"github.com/baristalab/drinks-api/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DrinksResponse is the envelope for drink listing and mutation responses
type DrinksResponse struct {
	Success bool        `json:"success"`
	Drinks  interface{} `json:"drinks"`
}

// DeleteResponse is the envelope for drink deletion responses
type DeleteResponse struct {
	Success bool      `json:"success"`
	Delete  uuid.UUID `json:"delete"`
}

// DrinkRequest is the body for creating a drink
type DrinkRequest struct {
	Title  string              `json:"title" validate:"required,max=255"`
	Recipe []models.RecipePart `json:"recipe" validate:"required,min=1,dive"`
}

// DrinkPatchRequest is the body for updating a drink; absent fields keep
// their current value.
type DrinkPatchRequest struct {
	Title  *string             `json:"title" validate:"omitempty,max=255"`
	Recipe []models.RecipePart `json:"recipe" validate:"omitempty,min=1,dive"`
}

// ListDrinksHandler handles GET /drinks.
// Public endpoint; returns the short drink representations.
func ListDrinksHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drinks, err := deps.Drinks.List(r.Context())
		if err != nil {
			deps.Logger.Error("failed to list drinks", zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		formatted := make([]models.DrinkShort, 0, len(drinks))
		for _, drink := range drinks {
			formatted = append(formatted, drink.Short())
		}

		_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{
			Success: true,
			Drinks:  formatted,
		})
	}
}

// ListDrinksDetailHandler handles GET /drinks-detail.
// Requires the get:drinks-detail permission; returns long representations.
func ListDrinksDetailHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drinks, err := deps.Drinks.List(r.Context())
		if err != nil {
			deps.Logger.Error("failed to list drinks", zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		formatted := make([]models.DrinkLong, 0, len(drinks))
		for _, drink := range drinks {
			formatted = append(formatted, drink.Long())
		}

		_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{
			Success: true,
			Drinks:  formatted,
		})
	}
}

// CreateDrinkHandler handles POST /drinks.
// Requires the post:drinks permission.
func CreateDrinkHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DrinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w)
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			deps.Logger.Warn("invalid drink payload", zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		drink := models.NewDrink(req.Title, req.Recipe)
		if err := deps.Drinks.Create(r.Context(), drink); err != nil {
			deps.Logger.Error("failed to create drink", zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{
			Success: true,
			Drinks:  []models.DrinkLong{drink.Long()},
		})
	}
}

// UpdateDrinkHandler handles PATCH /drinks/{id}.
// Requires the patch:drinks permission; 404 when the id does not exist.
// The read-modify-write runs in one transaction.
func UpdateDrinkHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			_ = utils.WriteBadRequest(w)
			return
		}

		var req DrinkPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w)
			return
		}

		if err := utils.ValidateStruct(req); err != nil {
			deps.Logger.Warn("invalid drink payload", zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		var updated *models.Drink
		err = deps.TxManager.InTransaction(r.Context(), func(ctx context.Context, _ repositories.Transaction) error {
			drink, err := deps.Drinks.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if req.Title != nil {
				drink.Title = *req.Title
			}
			if req.Recipe != nil {
				drink.Recipe = req.Recipe
			}
			drink.UpdatedAt = time.Now()

			if err := deps.Drinks.Update(ctx, drink); err != nil {
				return err
			}

			updated = drink
			return nil
		})

		if err != nil {
			if errors.Is(err, repositories.ErrDrinkNotFound) {
				_ = utils.WriteNotFound(w)
				return
			}
			deps.Logger.Error("failed to update drink", zap.String("id", id.String()), zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		_ = utils.WriteJSON(w, http.StatusOK, DrinksResponse{
			Success: true,
			Drinks:  []models.DrinkLong{updated.Long()},
		})
	}
}

// DeleteDrinkHandler handles DELETE /drinks/{id}.
// Requires the delete:drinks permission; 404 when the id does not exist.
func DeleteDrinkHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			_ = utils.WriteBadRequest(w)
			return
		}

		if err := deps.Drinks.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repositories.ErrDrinkNotFound) {
				_ = utils.WriteNotFound(w)
				return
			}
			deps.Logger.Error("failed to delete drink", zap.String("id", id.String()), zap.Error(err))
			_ = utils.WriteUnprocessable(w)
			return
		}

		_ = utils.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Delete:  id,
		})
	}
}
