package assessment

import (
	"time"

	"github.com/google/uuid"
)

// Assessment statuses. A submitted intake moves forward only: the dietitian
// marks it reviewed, then approved.
const (
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusApproved  = "approved"
)

var validTransitions = map[string]map[string]bool{
	StatusSubmitted: {StatusReviewed: true},
	StatusReviewed:  {StatusApproved: true},
}

// CanTransition reports whether an assessment may move between statuses.
func CanTransition(from, to string) bool {
	return validTransitions[from][to]
}

// Assessment maps to the assessments table: the patient's intake covering
// medical background, diet restrictions, and home equipment. One row per
// patient; resubmission updates it in place.
type Assessment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`

	Diagnosis string `db:"diagnosis" json:"diagnosis"`
	TubeType  string `db:"tube_type" json:"tube_type"`

	GISymptoms []string `db:"gi_symptoms" json:"gi_symptoms"`
	GINotes    *string  `db:"gi_notes" json:"gi_notes,omitempty"`

	Allergies          *string  `db:"allergies" json:"allergies,omitempty"`
	Intolerances       *string  `db:"intolerances" json:"intolerances,omitempty"`
	DietaryPreferences []string `db:"dietary_preferences" json:"dietary_preferences"`
	DietaryNotes       *string  `db:"dietary_notes" json:"dietary_notes,omitempty"`

	HasBlender      bool    `db:"has_blender" json:"has_blender"`
	BlenderType     *string `db:"blender_type" json:"blender_type,omitempty"`
	HasFoodStorage  bool    `db:"has_food_storage" json:"has_food_storage"`
	HasKitchenScale bool    `db:"has_kitchen_scale" json:"has_kitchen_scale"`

	FeedingGoal     *string `db:"feeding_goal" json:"feeding_goal,omitempty"`
	AdditionalNotes *string `db:"additional_notes" json:"additional_notes,omitempty"`

	PaymentMethod     *string `db:"payment_method" json:"payment_method,omitempty"`
	InsuranceProvider *string `db:"insurance_provider" json:"insurance_provider,omitempty"`

	Status     string     `db:"status" json:"status"`
	ReviewedBy *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
