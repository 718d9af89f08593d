package tracking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts a log entry. A second entry for the same patient and
	// date surfaces as apperr.ErrConflict.
	Create(ctx context.Context, l *SymptomLog) error
	// ListByPatient returns the patient's most recent entries by date.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit int) ([]*SymptomLog, error)
}
