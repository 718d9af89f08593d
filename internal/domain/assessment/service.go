package assessment

import (
	"context"
	"fmt"
	"strings"

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

// Submit records the patient's intake. Resubmission overwrites the clinical
// answers but does not reset review state.
func (s *Service) Submit(ctx context.Context, patientID uuid.UUID, a *Assessment) error {
	if strings.TrimSpace(a.Diagnosis) == "" {
		return fmt.Errorf("%w: diagnosis is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(a.TubeType) == "" {
		return fmt.Errorf("%w: tube_type is required", apperr.ErrValidation)
	}
	a.PatientID = patientID
	a.Status = StatusSubmitted
	return s.repo.Upsert(ctx, a)
}

func (s *Service) GetOwn(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	return s.repo.GetByPatient(ctx, patientID)
}

func (s *Service) GetForPatient(ctx context.Context, rdID, patientID uuid.UUID) (*Assessment, error) {
	if err := s.access.CanAccessPatient(ctx, rdID, patientID); err != nil {
		return nil, err
	}
	return s.repo.GetByPatient(ctx, patientID)
}

// Review advances the assessment's status. Transitions move forward only:
// submitted to reviewed, reviewed to approved.
func (s *Service) Review(ctx context.Context, rdID, patientID uuid.UUID, status string) (*Assessment, error) {
	if err := s.access.CanAccessPatient(ctx, rdID, patientID); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(a.Status, status) {
		return nil, fmt.Errorf("%w: cannot move assessment from %s to %s",
			apperr.ErrValidation, a.Status, status)
	}

	if err := s.repo.SetStatus(ctx, patientID, status, rdID); err != nil {
		return nil, err
	}
	return s.repo.GetByPatient(ctx, patientID)
}

func (s *Service) ListPendingForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListPendingForRD(ctx, rdID, limit, offset)
}
