package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// listLimit caps history reads; the clients show the latest month of entries.
const listLimit = 30

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

// Log records the patient's daily entry. Date defaults to today (UTC);
// severity must be within bounds when any symptoms are reported.
func (s *Service) Log(ctx context.Context, patientID uuid.UUID, l *SymptomLog) error {
	if l.Date == "" {
		l.Date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", l.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", apperr.ErrValidation)
	}
	if l.Severity < SeverityMin || l.Severity > SeverityMax {
		return fmt.Errorf("%w: severity must be between %d and %d",
			apperr.ErrValidation, SeverityMin, SeverityMax)
	}
	if l.Weight != nil && *l.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", apperr.ErrValidation)
	}
	l.PatientID = patientID
	return s.repo.Create(ctx, l)
}

func (s *Service) ListOwn(ctx context.Context, patientID uuid.UUID) ([]*SymptomLog, error) {
	return s.repo.ListByPatient(ctx, patientID, listLimit)
}

func (s *Service) ListForPatient(ctx context.Context, rdID, patientID uuid.UUID) ([]*SymptomLog, error) {
	if err := s.access.CanAccessPatient(ctx, rdID, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID, listLimit)
}
