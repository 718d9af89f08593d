package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert inserts the patient's assessment or updates it in place. The
	// status column is untouched on update; review state survives a
	// resubmission.
	Upsert(ctx context.Context, a *Assessment) error
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*Assessment, error)
	SetStatus(ctx context.Context, patientID uuid.UUID, status string, reviewedBy uuid.UUID) error
	// ListPendingForRD returns submitted assessments of the dietitian's
	// actively assigned patients.
	ListPendingForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
}
