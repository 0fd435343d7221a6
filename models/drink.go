package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipePart is one ingredient layer of a drink's recipe
type RecipePart struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
	Parts int    `json:"parts" validate:"required,gte=1"`
}

// Drink represents a drink in the catalog
type Drink struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Title     string       `json:"title" db:"title"`
	Recipe    []RecipePart `json:"recipe" db:"recipe"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Drink model
func (Drink) TableName() string {
	return "drinks"
}

// NewDrink creates a new Drink instance
func NewDrink(title string, recipe []RecipePart) *Drink {
	now := time.Now()
	return &Drink{
		ID:        uuid.New(),
		Title:     title,
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ShortRecipePart is the public view of a recipe layer, ingredient names omitted
type ShortRecipePart struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// DrinkShort is the public representation of a drink
type DrinkShort struct {
	ID     uuid.UUID         `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortRecipePart `json:"recipe"`
}

// DrinkLong is the privileged representation with the full recipe
type DrinkLong struct {
	ID     uuid.UUID    `json:"id"`
	Title  string       `json:"title"`
	Recipe []RecipePart `json:"recipe"`
}

// Short returns the drink with only the visual recipe data
func (d *Drink) Short() DrinkShort {
	recipe := make([]ShortRecipePart, len(d.Recipe))
	for i, part := range d.Recipe {
		recipe[i] = ShortRecipePart{
			Color: part.Color,
			Parts: part.Parts,
		}
	}
	return DrinkShort{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: recipe,
	}
}

// Long returns the drink with the full recipe
func (d *Drink) Long() DrinkLong {
	return DrinkLong{
		ID:     d.ID,
		Title:  d.Title,
		Recipe: d.Recipe,
	}
}
