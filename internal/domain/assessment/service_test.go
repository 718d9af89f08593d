package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// ── Mocks ──

type mockRepo struct {
	data map[uuid.UUID]*Assessment // keyed by patient ID
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: make(map[uuid.UUID]*Assessment)}
}

func (m *mockRepo) Upsert(_ context.Context, a *Assessment) error {
	if existing, ok := m.data[a.PatientID]; ok {
		// Review state survives resubmission.
		a.ID = existing.ID
		a.Status = existing.Status
		a.ReviewedBy = existing.ReviewedBy
		a.ReviewedAt = existing.ReviewedAt
	} else if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.data[a.PatientID] = a
	return nil
}
func (m *mockRepo) GetByPatient(_ context.Context, patientID uuid.UUID) (*Assessment, error) {
	if a, ok := m.data[patientID]; ok {
		return a, nil
	}
	return nil, apperr.ErrNotFound
}
func (m *mockRepo) SetStatus(_ context.Context, patientID uuid.UUID, status string, reviewedBy uuid.UUID) error {
	a, ok := m.data[patientID]
	if !ok {
		return apperr.ErrNotFound
	}
	now := time.Now()
	a.Status = status
	a.ReviewedBy = &reviewedBy
	a.ReviewedAt = &now
	return nil
}
func (m *mockRepo) ListPendingForRD(_ context.Context, _ uuid.UUID, _, _ int) ([]*Assessment, int, error) {
	var out []*Assessment
	for _, a := range m.data {
		if a.Status == StatusSubmitted {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

type allowAll struct{}

func (allowAll) CanAccessPatient(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type denyAll struct{}

func (denyAll) CanAccessPatient(context.Context, uuid.UUID, uuid.UUID) error {
	return apperr.ErrForbidden
}

func validIntake() *Assessment {
	return &Assessment{Diagnosis: "cerebral palsy", TubeType: "G-tube",
		GISymptoms: []string{"reflux"}}
}

// ── Tests ──

func TestSubmitRequiresDiagnosisAndTubeType(t *testing.T) {
	svc := NewService(newMockRepo(), allowAll{})

	err := svc.Submit(context.Background(), uuid.New(), &Assessment{TubeType: "G-tube"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for missing diagnosis", err)
	}
	err = svc.Submit(context.Background(), uuid.New(), &Assessment{Diagnosis: "CP"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for missing tube type", err)
	}
}

func TestSubmitStartsSubmitted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{})
	patient := uuid.New()

	if err := svc.Submit(context.Background(), patient, validIntake()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if repo.data[patient].Status != StatusSubmitted {
		t.Errorf("status = %q, want submitted", repo.data[patient].Status)
	}
}

func TestResubmitKeepsReviewState(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{})
	patient, rd := uuid.New(), uuid.New()

	if err := svc.Submit(context.Background(), patient, validIntake()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if _, err := svc.Review(context.Background(), rd, patient, StatusReviewed); err != nil {
		t.Fatalf("Review: %v", err)
	}

	updated := validIntake()
	updated.Diagnosis = "updated diagnosis"
	if err := svc.Submit(context.Background(), patient, updated); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	a := repo.data[patient]
	if a.Status != StatusReviewed {
		t.Errorf("status = %q, want reviewed after resubmit", a.Status)
	}
	if a.Diagnosis != "updated diagnosis" {
		t.Errorf("diagnosis = %q, want updated", a.Diagnosis)
	}
}

func TestReviewTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusSubmitted, StatusReviewed, true},
		{StatusReviewed, StatusApproved, true},
		{StatusSubmitted, StatusApproved, false},
		{StatusApproved, StatusReviewed, false},
		{StatusReviewed, StatusSubmitted, false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			repo := newMockRepo()
			svc := NewService(repo, allowAll{})
			patient, rd := uuid.New(), uuid.New()
			repo.data[patient] = &Assessment{ID: uuid.New(), PatientID: patient, Status: tc.from}

			_, err := svc.Review(context.Background(), rd, patient, tc.to)
			if tc.ok && err != nil {
				t.Fatalf("Review: %v", err)
			}
			if !tc.ok && !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestReviewSetsReviewer(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, allowAll{})
	patient, rd := uuid.New(), uuid.New()
	repo.data[patient] = &Assessment{ID: uuid.New(), PatientID: patient, Status: StatusSubmitted}

	a, err := svc.Review(context.Background(), rd, patient, StatusReviewed)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if a.ReviewedBy == nil || *a.ReviewedBy != rd {
		t.Errorf("reviewed_by = %v, want %v", a.ReviewedBy, rd)
	}
	if a.ReviewedAt == nil {
		t.Error("reviewed_at not set")
	}
}

func TestRDAccessGated(t *testing.T) {
	repo := newMockRepo()
	patient := uuid.New()
	repo.data[patient] = &Assessment{ID: uuid.New(), PatientID: patient, Status: StatusSubmitted}
	svc := NewService(repo, denyAll{})

	if _, err := svc.GetForPatient(context.Background(), uuid.New(), patient); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("GetForPatient err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Review(context.Background(), uuid.New(), patient, StatusReviewed); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("Review err = %v, want ErrForbidden", err)
	}
	if repo.data[patient].Status != StatusSubmitted {
		t.Error("denied review must not change status")
	}
}
