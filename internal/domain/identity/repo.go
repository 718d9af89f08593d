package identity

import (
	"context"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// GetPatientByEmail returns the patient profile with the given
	// already-normalized email, or apperr.ErrNotFound.
	GetPatientByEmail(ctx context.Context, email string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error
}

type RDProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RDProfile, error)
	Upsert(ctx context.Context, rp *RDProfile) error
}
