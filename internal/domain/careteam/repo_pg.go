package careteam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

type assignmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssignmentRepoPG(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepoPG{pool: pool}
}

const assignmentCols = `id, rd_id, patient_id, status, created_at, updated_at`

func scanAssignment(row pgx.Row) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.RDID, &a.PatientID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &a, err
}

func (r *assignmentRepoPG) Create(ctx context.Context, a *Assignment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rd_patient_assignments (id, rd_id, patient_id, status)
		VALUES ($1, $2, $3, $4)`,
		a.ID, a.RDID, a.PatientID, a.Status)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		// Lost the race against a concurrent assignment of the same pair.
		return apperr.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	return scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+assignmentCols+` FROM rd_patient_assignments WHERE id = $1`, id))
}

func (r *assignmentRepoPG) GetByPair(ctx context.Context, rdID, patientID uuid.UUID) (*Assignment, error) {
	return scanAssignment(r.pool.QueryRow(ctx, `
		SELECT `+assignmentCols+` FROM rd_patient_assignments
		WHERE rd_id = $1 AND patient_id = $2
		ORDER BY created_at DESC LIMIT 1`, rdID, patientID))
}

func (r *assignmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE rd_patient_assignments SET status = $2, updated_at = NOW()
		WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update assignment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *assignmentRepoPG) ListForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*AssignedPatient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM rd_patient_assignments WHERE rd_id = $1`, rdID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.rd_id, a.patient_id, a.status, a.created_at, a.updated_at,
			p.email, p.full_name
		FROM rd_patient_assignments a
		JOIN profiles p ON p.id = a.patient_id
		WHERE a.rd_id = $1
		ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`, rdID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*AssignedPatient
	for rows.Next() {
		var ap AssignedPatient
		if err := rows.Scan(&ap.ID, &ap.RDID, &ap.PatientID, &ap.Status,
			&ap.CreatedAt, &ap.UpdatedAt, &ap.PatientEmail, &ap.PatientFullName); err != nil {
			return nil, 0, err
		}
		items = append(items, &ap)
	}
	return items, total, rows.Err()
}

func (r *assignmentRepoPG) HasActive(ctx context.Context, rdID, patientID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM rd_patient_assignments
			WHERE rd_id = $1 AND patient_id = $2 AND status = 'active')`,
		rdID, patientID).Scan(&exists)
	return exists, err
}

func (r *assignmentRepoPG) CountActiveForRD(ctx context.Context, rdID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM rd_patient_assignments
		WHERE rd_id = $1 AND status = 'active'`, rdID).Scan(&n)
	return n, err
}

func (r *assignmentRepoPG) CountPendingAssessmentsForRD(ctx context.Context, rdID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM assessments s
		JOIN rd_patient_assignments a ON a.patient_id = s.patient_id
		WHERE a.rd_id = $1 AND a.status = 'active' AND s.status = 'submitted'`,
		rdID).Scan(&n)
	return n, err
}

func (r *assignmentRepoPG) CountSymptomLogsForRDSince(ctx context.Context, rdID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM symptom_logs l
		JOIN rd_patient_assignments a ON a.patient_id = l.patient_id
		WHERE a.rd_id = $1 AND a.status = 'active' AND l.log_date >= $2`,
		rdID, since).Scan(&n)
	return n, err
}
