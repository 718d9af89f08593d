package mealplan

import (
	"context"

	"github.com/google/uuid"
)

type GroceryListRepository interface {
	// UpsertWeek replaces the patient's list for the given week.
	UpsertWeek(ctx context.Context, patientID uuid.UUID, weekStart string, items []GroceryItem) error
	// GetWeek returns the patient's list for the given week, or
	// apperr.ErrNotFound.
	GetWeek(ctx context.Context, patientID uuid.UUID, weekStart string) (*GroceryList, error)
}

type SavedRecipeRepository interface {
	Create(ctx context.Context, sr *SavedRecipe) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*SavedRecipe, error)
	// Delete removes the saved recipe when it belongs to the patient;
	// apperr.ErrNotFound otherwise.
	Delete(ctx context.Context, patientID, id uuid.UUID) error
}
