package nutrition

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert updates the patient's current targets row or inserts the first
	// one.
	Upsert(ctx context.Context, nt *NutrientTargets) error
	// CurrentForPatient returns the most recent targets for the patient, or
	// apperr.ErrNotFound.
	CurrentForPatient(ctx context.Context, patientID uuid.UUID) (*NutrientTargets, error)
}
