package mealplan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// =========== Grocery List Repository ===========

type groceryRepoPG struct{ pool *pgxpool.Pool }

func NewGroceryRepoPG(pool *pgxpool.Pool) GroceryListRepository {
	return &groceryRepoPG{pool: pool}
}

func (r *groceryRepoPG) UpsertWeek(ctx context.Context, patientID uuid.UUID, weekStart string, items []GroceryItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal grocery items: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO grocery_lists (id, patient_id, week_start, items)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (patient_id, week_start) DO UPDATE SET
			items = EXCLUDED.items,
			updated_at = NOW()`,
		uuid.New(), patientID, weekStart, payload)
	if err != nil {
		return fmt.Errorf("upsert grocery list: %w", err)
	}
	return nil
}

func (r *groceryRepoPG) GetWeek(ctx context.Context, patientID uuid.UUID, weekStart string) (*GroceryList, error) {
	var gl GroceryList
	var payload []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, patient_id, week_start::text, items, updated_at
		FROM grocery_lists
		WHERE patient_id = $1 AND week_start = $2`,
		patientID, weekStart).
		Scan(&gl.ID, &gl.PatientID, &gl.WeekStart, &payload, &gl.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &gl.Items); err != nil {
		return nil, fmt.Errorf("unmarshal grocery items: %w", err)
	}
	return &gl, nil
}

// =========== Saved Recipe Repository ===========

type savedRecipeRepoPG struct{ pool *pgxpool.Pool }

func NewSavedRecipeRepoPG(pool *pgxpool.Pool) SavedRecipeRepository {
	return &savedRecipeRepoPG{pool: pool}
}

func (r *savedRecipeRepoPG) Create(ctx context.Context, sr *SavedRecipe) error {
	sr.ID = uuid.New()
	payload, err := json.Marshal(sr.Recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO saved_recipes (id, patient_id, recipe)
		VALUES ($1, $2, $3)`,
		sr.ID, sr.PatientID, payload)
	if err != nil {
		return fmt.Errorf("insert saved recipe: %w", err)
	}
	return nil
}

func (r *savedRecipeRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*SavedRecipe, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, recipe, created_at
		FROM saved_recipes
		WHERE patient_id = $1
		ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*SavedRecipe
	for rows.Next() {
		var sr SavedRecipe
		var payload []byte
		if err := rows.Scan(&sr.ID, &sr.PatientID, &payload, &sr.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &sr.Recipe); err != nil {
			return nil, fmt.Errorf("unmarshal recipe: %w", err)
		}
		items = append(items, &sr)
	}
	return items, rows.Err()
}

func (r *savedRecipeRepoPG) Delete(ctx context.Context, patientID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM saved_recipes WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return fmt.Errorf("delete saved recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
