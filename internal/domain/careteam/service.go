package careteam

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/domain/identity"
	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// PatientDirectory resolves patient accounts for assignment. Satisfied by
// identity.Service.
type PatientDirectory interface {
	FindPatientByEmail(ctx context.Context, email string) (*identity.Profile, error)
}

type Service struct {
	assignments AssignmentRepository
	directory   PatientDirectory
}

func NewService(assignments AssignmentRepository, directory PatientDirectory) *Service {
	return &Service{assignments: assignments, directory: directory}
}

// LookupPatient finds a patient account by email so the dietitian can confirm
// identity before assigning.
func (s *Service) LookupPatient(ctx context.Context, email string) (*identity.Profile, error) {
	p, err := s.directory.FindPatientByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: no patient found with that email address", apperr.ErrNotFound)
	}
	return p, err
}

// Assign establishes (or reactivates) the care relationship between the
// dietitian and a patient. An existing active assignment is a Conflict; a
// paused or discharged one is reactivated in place.
func (s *Service) Assign(ctx context.Context, rdID, patientID uuid.UUID) (*AssignResult, error) {
	if rdID == uuid.Nil || patientID == uuid.Nil {
		return nil, fmt.Errorf("%w: rd and patient are required", apperr.ErrValidation)
	}

	existing, err := s.assignments.GetByPair(ctx, rdID, patientID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		a := &Assignment{RDID: rdID, PatientID: patientID, Status: StatusActive}
		if err := s.assignments.Create(ctx, a); err != nil {
			return nil, err
		}
		return &AssignResult{Assignment: a}, nil
	case err != nil:
		return nil, err
	}

	if existing.Status == StatusActive {
		return nil, fmt.Errorf("%w: this patient is already assigned to you", apperr.ErrConflict)
	}

	if err := s.assignments.UpdateStatus(ctx, existing.ID, StatusActive); err != nil {
		return nil, err
	}
	existing.Status = StatusActive
	return &AssignResult{Assignment: existing, Reactivated: true}, nil
}

// UpdateStatus moves an assignment through its lifecycle. The assignment must
// belong to the calling dietitian.
func (s *Service) UpdateStatus(ctx context.Context, rdID, assignmentID uuid.UUID, status string) (*Assignment, error) {
	if status != StatusActive && status != StatusPaused && status != StatusDischarged {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrValidation, status)
	}

	a, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if a.RDID != rdID {
		return nil, apperr.ErrForbidden
	}
	if !CanTransition(a.Status, status) {
		return nil, fmt.Errorf("%w: cannot move assignment from %s to %s",
			apperr.ErrValidation, a.Status, status)
	}

	if err := s.assignments.UpdateStatus(ctx, assignmentID, status); err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

func (s *Service) ListForRD(ctx context.Context, rdID uuid.UUID, limit, offset int) ([]*AssignedPatient, int, error) {
	return s.assignments.ListForRD(ctx, rdID, limit, offset)
}

// CanAccessPatient is the authorization predicate for every dietitian read or
// write of a patient's clinical data: there must be an active assignment
// between the pair.
func (s *Service) CanAccessPatient(ctx context.Context, rdID, patientID uuid.UUID) error {
	ok, err := s.assignments.HasActive(ctx, rdID, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrForbidden
	}
	return nil
}

// DashboardStats gathers the dietitian's home-page counters. The three
// queries are independent, so they run concurrently; the first error wins.
func (s *Service) DashboardStats(ctx context.Context, rdID uuid.UUID) (*DashboardStats, error) {
	var (
		stats DashboardStats
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)

	setErr := func(err error) {
		mu.Lock()
		if first == nil {
			first = err
		}
		mu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		n, err := s.assignments.CountActiveForRD(ctx, rdID)
		if err != nil {
			setErr(err)
			return
		}
		stats.ActivePatients = n
	}()
	go func() {
		defer wg.Done()
		n, err := s.assignments.CountPendingAssessmentsForRD(ctx, rdID)
		if err != nil {
			setErr(err)
			return
		}
		stats.PendingAssessments = n
	}()
	go func() {
		defer wg.Done()
		since := time.Now().UTC().AddDate(0, 0, -7)
		n, err := s.assignments.CountSymptomLogsForRDSince(ctx, rdID, since)
		if err != nil {
			setErr(err)
			return
		}
		stats.RecentSymptomLogs = n
	}()
	wg.Wait()

	if first != nil {
		return nil, first
	}
	return &stats, nil
}
