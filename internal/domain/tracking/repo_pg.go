package tracking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, l *SymptomLog) error {
	l.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO symptom_logs (id, patient_id, log_date, weight, symptoms,
			severity, intake_completed, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.PatientID, l.Date, l.Weight, l.Symptoms,
		l.Severity, l.IntakeCompleted, l.Notes)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: a log already exists for this date", apperr.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert symptom log: %w", err)
	}
	return nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*SymptomLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, log_date::text, weight, symptoms, severity,
			intake_completed, notes, created_at
		FROM symptom_logs
		WHERE patient_id = $1
		ORDER BY log_date DESC LIMIT $2`, patientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*SymptomLog
	for rows.Next() {
		var l SymptomLog
		if err := rows.Scan(&l.ID, &l.PatientID, &l.Date, &l.Weight, &l.Symptoms,
			&l.Severity, &l.IntakeCompleted, &l.Notes, &l.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &l)
	}
	return items, rows.Err()
}
