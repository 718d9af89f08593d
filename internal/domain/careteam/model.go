package careteam

import (
	"time"

	"github.com/google/uuid"
)

// Assignment statuses. An assignment is the care relationship between a
// dietitian and a patient; only active assignments grant the dietitian
// access to the patient's clinical data.
const (
	StatusActive     = "active"
	StatusPaused     = "paused"
	StatusDischarged = "discharged"
)

// Assignment maps to the rd_patient_assignments table.
type Assignment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	RDID      uuid.UUID `db:"rd_id" json:"rd_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// validTransitions is the assignment status machine. Reactivation from
// paused or discharged is allowed; everything else must be explicit here.
var validTransitions = map[string]map[string]bool{
	StatusActive:     {StatusPaused: true, StatusDischarged: true},
	StatusPaused:     {StatusActive: true, StatusDischarged: true},
	StatusDischarged: {StatusActive: true},
}

// CanTransition reports whether an assignment may move from one status to
// another.
func CanTransition(from, to string) bool {
	return validTransitions[from][to]
}

// AssignResult reports how Assign resolved: a brand new relationship or a
// reactivated prior one.
type AssignResult struct {
	Assignment  *Assignment `json:"assignment"`
	Reactivated bool        `json:"reactivated"`
}

// DashboardStats is the dietitian's home-page summary.
type DashboardStats struct {
	ActivePatients     int `json:"active_patients"`
	PendingAssessments int `json:"pending_assessments"`
	RecentSymptomLogs  int `json:"recent_symptom_logs"`
}

// AssignedPatient is an assignment joined with the patient's profile for the
// dietitian's patient list.
type AssignedPatient struct {
	Assignment
	PatientEmail    string `json:"patient_email"`
	PatientFullName string `json:"patient_full_name"`
}
