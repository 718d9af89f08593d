package assessment

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

const assessmentCols = `id, patient_id, diagnosis, tube_type, gi_symptoms, gi_notes,
	allergies, intolerances, dietary_preferences, dietary_notes,
	has_blender, blender_type, has_food_storage, has_kitchen_scale,
	feeding_goal, additional_notes, payment_method, insurance_provider,
	status, reviewed_by, reviewed_at, created_at, updated_at`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.PatientID, &a.Diagnosis, &a.TubeType, &a.GISymptoms, &a.GINotes,
		&a.Allergies, &a.Intolerances, &a.DietaryPreferences, &a.DietaryNotes,
		&a.HasBlender, &a.BlenderType, &a.HasFoodStorage, &a.HasKitchenScale,
		&a.FeedingGoal, &a.AdditionalNotes, &a.PaymentMethod, &a.InsuranceProvider,
		&a.Status, &a.ReviewedBy, &a.ReviewedAt, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Upsert(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO assessments (id, patient_id, diagnosis, tube_type, gi_symptoms,
			gi_notes, allergies, intolerances, dietary_preferences, dietary_notes,
			has_blender, blender_type, has_food_storage, has_kitchen_scale,
			feeding_goal, additional_notes, payment_method, insurance_provider, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (patient_id) DO UPDATE SET
			diagnosis = EXCLUDED.diagnosis,
			tube_type = EXCLUDED.tube_type,
			gi_symptoms = EXCLUDED.gi_symptoms,
			gi_notes = EXCLUDED.gi_notes,
			allergies = EXCLUDED.allergies,
			intolerances = EXCLUDED.intolerances,
			dietary_preferences = EXCLUDED.dietary_preferences,
			dietary_notes = EXCLUDED.dietary_notes,
			has_blender = EXCLUDED.has_blender,
			blender_type = EXCLUDED.blender_type,
			has_food_storage = EXCLUDED.has_food_storage,
			has_kitchen_scale = EXCLUDED.has_kitchen_scale,
			feeding_goal = EXCLUDED.feeding_goal,
			additional_notes = EXCLUDED.additional_notes,
			payment_method = EXCLUDED.payment_method,
			insurance_provider = EXCLUDED.insurance_provider,
			updated_at = NOW()`,
		a.ID, a.PatientID, a.Diagnosis, a.TubeType, a.GISymptoms,
		a.GINotes, a.Allergies, a.Intolerances, a.DietaryPreferences, a.DietaryNotes,
		a.HasBlender, a.BlenderType, a.HasFoodStorage, a.HasKitchenScale,
		a.FeedingGoal, a.AdditionalNotes, a.PaymentMethod, a.InsuranceProvider, a.Status)
	if err != nil {
		return fmt.Errorf("upsert assessment: %w", err)
	}
	return nil
}

func (r *repoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	return scanAssessment(r.pool.QueryRow(ctx,
		`SELECT `+assessmentCols+` FROM assessments WHERE patient_id = $1`, patientID))
}

func (r *repoPG) SetStatus(ctx context.Context, patientID uuid.UUID, status string, reviewedBy uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE assessments SET status = $2, reviewed_by = $3, reviewed_at = NOW(),
			updated_at = NOW()
		WHERE patient_id = $1`, patientID, status, reviewedBy)
	if err != nil {
		return fmt.Errorf("set assessment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *repoPG) ListPendingForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM assessments s
		JOIN rd_patient_assignments a ON a.patient_id = s.patient_id
		WHERE a.rd_id = $1 AND a.status = 'active' AND s.status = 'submitted'`,
		rdID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixCols("s")+` FROM assessments s
		JOIN rd_patient_assignments a ON a.patient_id = s.patient_id
		WHERE a.rd_id = $1 AND a.status = 'active' AND s.status = 'submitted'
		ORDER BY s.created_at ASC LIMIT $2 OFFSET $3`, rdID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func prefixCols(alias string) string {
	return alias + `.id, ` + alias + `.patient_id, ` + alias + `.diagnosis, ` +
		alias + `.tube_type, ` + alias + `.gi_symptoms, ` + alias + `.gi_notes, ` +
		alias + `.allergies, ` + alias + `.intolerances, ` + alias + `.dietary_preferences, ` +
		alias + `.dietary_notes, ` + alias + `.has_blender, ` + alias + `.blender_type, ` +
		alias + `.has_food_storage, ` + alias + `.has_kitchen_scale, ` + alias + `.feeding_goal, ` +
		alias + `.additional_notes, ` + alias + `.payment_method, ` + alias + `.insurance_provider, ` +
		alias + `.status, ` + alias + `.reviewed_by, ` + alias + `.reviewed_at, ` +
		alias + `.created_at, ` + alias + `.updated_at`
}
