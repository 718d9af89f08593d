package nutrition

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// AccessChecker gates dietitian access to a patient's data. Satisfied by
// careteam.Service.
type AccessChecker interface {
	CanAccessPatient(ctx context.Context, rdID, patientID uuid.UUID) error
}

type Service struct {
	repo   Repository
	access AccessChecker
}

func NewService(repo Repository, access AccessChecker) *Service {
	return &Service{repo: repo, access: access}
}

// SetTargets records the dietitian's prescription for the patient. The
// dietitian must have an active assignment; ranges must be sane.
func (s *Service) SetTargets(ctx context.Context, rdID uuid.UUID, nt *NutrientTargets) (*NutrientTargets, error) {
	if err := s.access.CanAccessPatient(ctx, rdID, nt.PatientID); err != nil {
		return nil, err
	}
	if err := validateRanges(nt); err != nil {
		return nil, err
	}
	nt.SetBy = rdID
	if err := s.repo.Upsert(ctx, nt); err != nil {
		return nil, err
	}
	return nt, nil
}

func validateRanges(nt *NutrientTargets) error {
	ranges := []struct {
		name     string
		min, max int
	}{
		{"calories", nt.CaloriesMin, nt.CaloriesMax},
		{"protein", nt.ProteinMin, nt.ProteinMax},
		{"carbs", nt.CarbsMin, nt.CarbsMax},
		{"fat", nt.FatMin, nt.FatMax},
		{"fiber", nt.FiberMin, nt.FiberMax},
		{"fluids", nt.FluidsMin, nt.FluidsMax},
	}
	for _, r := range ranges {
		if r.min < 0 || r.max < 0 {
			return fmt.Errorf("%w: %s range must be non-negative", apperr.ErrValidation, r.name)
		}
		if r.max > 0 && r.min > r.max {
			return fmt.Errorf("%w: %s min exceeds max", apperr.ErrValidation, r.name)
		}
	}
	return nil
}

// CurrentForOwner returns the patient's own current targets.
func (s *Service) CurrentForOwner(ctx context.Context, patientID uuid.UUID) (*NutrientTargets, error) {
	return s.repo.CurrentForPatient(ctx, patientID)
}

// CurrentForPatient is the dietitian's view, gated on the active assignment.
func (s *Service) CurrentForPatient(ctx context.Context, rdID, patientID uuid.UUID) (*NutrientTargets, error) {
	if err := s.access.CanAccessPatient(ctx, rdID, patientID); err != nil {
		return nil, err
	}
	return s.repo.CurrentForPatient(ctx, patientID)
}
