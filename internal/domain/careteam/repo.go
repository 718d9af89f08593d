package careteam

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AssignmentRepository interface {
	// Create inserts a new assignment. A unique-constraint violation on the
	// active (rd_id, patient_id) pair surfaces as apperr.ErrConflict.
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assignment, error)
	// GetByPair returns the most recent assignment between the pair,
	// regardless of status, or apperr.ErrNotFound.
	GetByPair(ctx context.Context, rdID, patientID uuid.UUID) (*Assignment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*AssignedPatient, int, error)
	// HasActive reports whether an active assignment exists between the pair.
	HasActive(ctx context.Context, rdID, patientID uuid.UUID) (bool, error)

	// Dashboard counters.
	CountActiveForRD(ctx context.Context, rdID uuid.UUID) (int, error)
	CountPendingAssessmentsForRD(ctx context.Context, rdID uuid.UUID) (int, error)
	CountSymptomLogsForRDSince(ctx context.Context, rdID uuid.UUID, since time.Time) (int, error)
}
