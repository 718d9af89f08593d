package nutrition

import (
	"time"

	"github.com/google/uuid"
)

// NutrientTargets maps to the nutrient_targets table: the daily ranges the
// dietitian prescribes for a patient's blended diet.
type NutrientTargets struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`

	CaloriesMin int `db:"calories_min" json:"calories_min"`
	CaloriesMax int `db:"calories_max" json:"calories_max"`
	ProteinMin  int `db:"protein_min" json:"protein_min"`
	ProteinMax  int `db:"protein_max" json:"protein_max"`
	CarbsMin    int `db:"carbs_min" json:"carbs_min"`
	CarbsMax    int `db:"carbs_max" json:"carbs_max"`
	FatMin      int `db:"fat_min" json:"fat_min"`
	FatMax      int `db:"fat_max" json:"fat_max"`
	FiberMin    int `db:"fiber_min" json:"fiber_min"`
	FiberMax    int `db:"fiber_max" json:"fiber_max"`
	FluidsMin   int `db:"fluids_min" json:"fluids_min"`
	FluidsMax   int `db:"fluids_max" json:"fluids_max"`

	FeedingSchedule *string `db:"feeding_schedule" json:"feeding_schedule,omitempty"`
	SafetyNotes     *string `db:"safety_notes" json:"safety_notes,omitempty"`
	RDNotes         *string `db:"rd_notes" json:"rd_notes,omitempty"`

	SetBy     uuid.UUID `db:"set_by" json:"set_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
