package nutrition

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const targetCols = `id, patient_id, calories_min, calories_max, protein_min, protein_max,
	carbs_min, carbs_max, fat_min, fat_max, fiber_min, fiber_max,
	fluids_min, fluids_max, feeding_schedule, safety_notes, rd_notes,
	set_by, created_at, updated_at`

func scanTargets(row pgx.Row) (*NutrientTargets, error) {
	var nt NutrientTargets
	err := row.Scan(&nt.ID, &nt.PatientID, &nt.CaloriesMin, &nt.CaloriesMax,
		&nt.ProteinMin, &nt.ProteinMax, &nt.CarbsMin, &nt.CarbsMax,
		&nt.FatMin, &nt.FatMax, &nt.FiberMin, &nt.FiberMax,
		&nt.FluidsMin, &nt.FluidsMax, &nt.FeedingSchedule, &nt.SafetyNotes,
		&nt.RDNotes, &nt.SetBy, &nt.CreatedAt, &nt.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &nt, err
}

func (r *repoPG) Upsert(ctx context.Context, nt *NutrientTargets) error {
	if nt.ID == uuid.Nil {
		nt.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO nutrient_targets (id, patient_id, calories_min, calories_max,
			protein_min, protein_max, carbs_min, carbs_max, fat_min, fat_max,
			fiber_min, fiber_max, fluids_min, fluids_max, feeding_schedule,
			safety_notes, rd_notes, set_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (patient_id) DO UPDATE SET
			calories_min = EXCLUDED.calories_min,
			calories_max = EXCLUDED.calories_max,
			protein_min = EXCLUDED.protein_min,
			protein_max = EXCLUDED.protein_max,
			carbs_min = EXCLUDED.carbs_min,
			carbs_max = EXCLUDED.carbs_max,
			fat_min = EXCLUDED.fat_min,
			fat_max = EXCLUDED.fat_max,
			fiber_min = EXCLUDED.fiber_min,
			fiber_max = EXCLUDED.fiber_max,
			fluids_min = EXCLUDED.fluids_min,
			fluids_max = EXCLUDED.fluids_max,
			feeding_schedule = EXCLUDED.feeding_schedule,
			safety_notes = EXCLUDED.safety_notes,
			rd_notes = EXCLUDED.rd_notes,
			set_by = EXCLUDED.set_by,
			updated_at = NOW()`,
		nt.ID, nt.PatientID, nt.CaloriesMin, nt.CaloriesMax,
		nt.ProteinMin, nt.ProteinMax, nt.CarbsMin, nt.CarbsMax,
		nt.FatMin, nt.FatMax, nt.FiberMin, nt.FiberMax,
		nt.FluidsMin, nt.FluidsMax, nt.FeedingSchedule,
		nt.SafetyNotes, nt.RDNotes, nt.SetBy)
	if err != nil {
		return fmt.Errorf("upsert nutrient targets: %w", err)
	}
	return nil
}

func (r *repoPG) CurrentForPatient(ctx context.Context, patientID uuid.UUID) (*NutrientTargets, error) {
	return scanTargets(r.pool.QueryRow(ctx, `
		SELECT `+targetCols+` FROM nutrient_targets
		WHERE patient_id = $1
		ORDER BY created_at DESC LIMIT 1`, patientID))
}
