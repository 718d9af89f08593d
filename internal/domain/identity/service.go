package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

type Service struct {
	profiles   ProfileRepository
	rdProfiles RDProfileRepository
}

func NewService(profiles ProfileRepository, rdProfiles RDProfileRepository) *Service {
	return &Service{profiles: profiles, rdProfiles: rdProfiles}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// EnsureProfile records the account in the profiles table on first contact.
// Role is never changed through this path; new rows default to patient.
func (s *Service) EnsureProfile(ctx context.Context, id uuid.UUID, email, fullName, role string) error {
	if role == "" {
		role = "patient"
	}
	return s.profiles.Upsert(ctx, &Profile{
		ID:       id,
		Email:    strings.ToLower(strings.TrimSpace(email)),
		FullName: fullName,
		Role:     role,
	})
}

func (s *Service) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return fmt.Errorf("%w: full_name is required", apperr.ErrValidation)
	}
	return s.profiles.UpdateFullName(ctx, id, fullName)
}

// FindPatientByEmail looks up a patient account by email for care-team
// assignment. The email is normalized (trimmed, lowercased) before matching,
// and only patient-role accounts are considered.
func (s *Service) FindPatientByEmail(ctx context.Context, email string) (*Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}
	p, err := s.profiles.GetPatientByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetRDProfile(ctx context.Context, id uuid.UUID) (*RDProfile, error) {
	return s.rdProfiles.GetByID(ctx, id)
}

func (s *Service) UpsertRDProfile(ctx context.Context, rp *RDProfile) error {
	if rp.ID == uuid.Nil {
		return fmt.Errorf("%w: id is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(rp.LicenseNumber) == "" {
		return fmt.Errorf("%w: license_number is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(rp.LicenseState) == "" {
		return fmt.Errorf("%w: license_state is required", apperr.ErrValidation)
	}
	return s.rdProfiles.Upsert(ctx, rp)
}
