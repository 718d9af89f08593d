package mealplan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GroceryItem is one line of a weekly list. Checked is patient-edited state
// from the shopping view.
type GroceryItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity string `json:"quantity"`
	Checked  bool   `json:"checked"`
}

// GroceryList maps to the grocery_lists table. One row per patient per week,
// keyed by the week's Sunday.
type GroceryList struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	PatientID uuid.UUID     `db:"patient_id" json:"patient_id"`
	WeekStart string        `db:"week_start" json:"week_start"` // YYYY-MM-DD, a Sunday
	Items     []GroceryItem `db:"items" json:"items"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}

// Ingredient is one recipe component with its measured amount.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe is a single blenderized tube feeding recipe.
type Recipe struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Calories     float64      `json:"calories"`
	Protein      float64      `json:"protein"`
	VolumeML     float64      `json:"volume_ml"`
	PrepTime     string       `json:"prep_time"`
	Tags         []string     `json:"tags"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
}

// SavedRecipe maps to the saved_recipes table: a recipe the patient chose to
// keep.
type SavedRecipe struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Recipe    Recipe    `db:"recipe" json:"recipe"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Profile is the clinical context fed into generation prompts. It mirrors the
// patient's assessment and current targets; NutrientTargets is passed through
// as JSON so the prompt shows exactly what the dietitian prescribed.
type Profile struct {
	NutrientTargets    json.RawMessage `json:"nutrient_targets,omitempty"`
	Allergies          string          `json:"allergies"`
	Intolerances       string          `json:"intolerances"`
	DietaryPreferences []string        `json:"dietary_preferences"`
	GISymptoms         []string        `json:"gi_symptoms"`
	FeedingGoal        string          `json:"feeding_goal"`
}

// WeekStart returns the date of the most recent Sunday on or before t, in
// UTC. Grocery lists are keyed by this date.
func WeekStart(t time.Time) string {
	t = t.UTC()
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format("2006-01-02")
}
