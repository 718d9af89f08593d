package identity

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the profiles table. The ID is the subject of the identity
// provider's token, so a profile row exists for every account that has
// signed in.
type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RDProfile maps to the rd_profiles table. One row per dietitian account,
// keyed by the profile ID.
type RDProfile struct {
	ID                uuid.UUID `db:"id" json:"id"`
	LicenseNumber     string    `db:"license_number" json:"license_number"`
	LicenseState      string    `db:"license_state" json:"license_state"`
	Specializations   []string  `db:"specializations" json:"specializations"`
	Bio               *string   `db:"bio" json:"bio,omitempty"`
	AcceptingPatients bool      `db:"accepting_patients" json:"accepting_patients"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
