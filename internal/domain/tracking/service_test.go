package tracking

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

type mockRepo struct {
	logs []*SymptomLog
}

func (m *mockRepo) Create(_ context.Context, l *SymptomLog) error {
	for _, existing := range m.logs {
		if existing.PatientID == l.PatientID && existing.Date == l.Date {
			return apperr.ErrConflict
		}
	}
	l.ID = uuid.New()
	m.logs = append(m.logs, l)
	return nil
}
func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit int) ([]*SymptomLog, error) {
	var out []*SymptomLog
	for _, l := range m.logs {
		if l.PatientID == patientID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type allowAll struct{}

func (allowAll) CanAccessPatient(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type denyAll struct{}

func (denyAll) CanAccessPatient(context.Context, uuid.UUID, uuid.UUID) error {
	return apperr.ErrForbidden
}

func TestLogValidatesSeverity(t *testing.T) {
	svc := NewService(&mockRepo{}, allowAll{})
	patient := uuid.New()

	for _, severity := range []int{0, 4, -1} {
		err := svc.Log(context.Background(), patient, &SymptomLog{
			Date: "2026-08-29", Severity: severity, Symptoms: []string{"nausea"}})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("severity %d: err = %v, want ErrValidation", severity, err)
		}
	}
}

func TestLogValidatesDate(t *testing.T) {
	svc := NewService(&mockRepo{}, allowAll{})
	err := svc.Log(context.Background(), uuid.New(), &SymptomLog{
		Date: "29/08/2026", Severity: 2})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestLogDefaultsDateToToday(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, allowAll{})

	l := &SymptomLog{Severity: 1}
	if err := svc.Log(context.Background(), uuid.New(), l); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if l.Date == "" {
		t.Error("date not defaulted")
	}
}

func TestLogDuplicateDateConflicts(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, allowAll{})
	patient := uuid.New()

	first := &SymptomLog{Date: "2026-08-29", Severity: 2, Symptoms: []string{"bloating"}}
	if err := svc.Log(context.Background(), patient, first); err != nil {
		t.Fatalf("first Log: %v", err)
	}
	err := svc.Log(context.Background(), patient, &SymptomLog{Date: "2026-08-29", Severity: 1})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestLogRejectsNonPositiveWeight(t *testing.T) {
	svc := NewService(&mockRepo{}, allowAll{})
	w := 0.0
	err := svc.Log(context.Background(), uuid.New(), &SymptomLog{
		Date: "2026-08-29", Severity: 1, Weight: &w})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestListForPatientGated(t *testing.T) {
	repo := &mockRepo{}
	patient := uuid.New()
	repo.logs = append(repo.logs, &SymptomLog{ID: uuid.New(), PatientID: patient,
		Date: "2026-08-28", Severity: 2})

	if _, err := NewService(repo, denyAll{}).ListForPatient(context.Background(), uuid.New(), patient); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	logs, err := NewService(repo, allowAll{}).ListForPatient(context.Background(), uuid.New(), patient)
	if err != nil {
		t.Fatalf("ListForPatient: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("got %d logs, want 1", len(logs))
	}
}

func TestListOwnNewestFirstCapped(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, allowAll{})
	patient := uuid.New()

	dates := []string{"2026-08-01", "2026-08-15", "2026-08-10"}
	for _, d := range dates {
		if err := svc.Log(context.Background(), patient, &SymptomLog{Date: d, Severity: 1}); err != nil {
			t.Fatalf("Log %s: %v", d, err)
		}
	}

	logs, err := svc.ListOwn(context.Background(), patient)
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(logs) != 3 || logs[0].Date != "2026-08-15" {
		t.Errorf("logs order wrong: %v", logs)
	}
}
