package tracking

import (
	"time"

	"github.com/google/uuid"
)

// Severity bounds for a day's symptoms: 1 mild, 2 moderate, 3 severe.
const (
	SeverityMin = 1
	SeverityMax = 3
)

// SymptomLog maps to the symptom_logs table. One entry per patient per day;
// entries are immutable once written.
type SymptomLog struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	Date            string    `db:"log_date" json:"date"` // YYYY-MM-DD
	Weight          *float64  `db:"weight" json:"weight,omitempty"`
	Symptoms        []string  `db:"symptoms" json:"symptoms"`
	Severity        int       `db:"severity" json:"severity"`
	IntakeCompleted bool      `db:"intake_completed" json:"intake_completed"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
