package careteam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/domain/identity"
	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// ── Mock Repository ──

type mockAssignmentRepo struct {
	data map[uuid.UUID]*Assignment
	// createErr lets tests simulate a constraint race on insert.
	createErr error

	logCounts       map[uuid.UUID]int
	pendingCounts   map[uuid.UUID]int
	countActiveErr  error
	countPendingErr error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		data:          make(map[uuid.UUID]*Assignment),
		logCounts:     make(map[uuid.UUID]int),
		pendingCounts: make(map[uuid.UUID]int),
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *Assignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.data[a.ID] = a
	return nil
}
func (m *mockAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Assignment, error) {
	if a, ok := m.data[id]; ok {
		return a, nil
	}
	return nil, apperr.ErrNotFound
}
func (m *mockAssignmentRepo) GetByPair(_ context.Context, rdID, patientID uuid.UUID) (*Assignment, error) {
	var latest *Assignment
	for _, a := range m.data {
		if a.RDID == rdID && a.PatientID == patientID {
			if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
				latest = a
			}
		}
	}
	if latest == nil {
		return nil, apperr.ErrNotFound
	}
	return latest, nil
}
func (m *mockAssignmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	a, ok := m.data[id]
	if !ok {
		return apperr.ErrNotFound
	}
	a.Status = status
	return nil
}
func (m *mockAssignmentRepo) ListForRD(_ context.Context, rdID uuid.UUID, limit, offset int) ([]*AssignedPatient, int, error) {
	var out []*AssignedPatient
	for _, a := range m.data {
		if a.RDID == rdID {
			out = append(out, &AssignedPatient{Assignment: *a})
		}
	}
	return out, len(out), nil
}
func (m *mockAssignmentRepo) HasActive(_ context.Context, rdID, patientID uuid.UUID) (bool, error) {
	for _, a := range m.data {
		if a.RDID == rdID && a.PatientID == patientID && a.Status == StatusActive {
			return true, nil
		}
	}
	return false, nil
}
func (m *mockAssignmentRepo) CountActiveForRD(_ context.Context, rdID uuid.UUID) (int, error) {
	if m.countActiveErr != nil {
		return 0, m.countActiveErr
	}
	n := 0
	for _, a := range m.data {
		if a.RDID == rdID && a.Status == StatusActive {
			n++
		}
	}
	return n, nil
}
func (m *mockAssignmentRepo) CountPendingAssessmentsForRD(_ context.Context, rdID uuid.UUID) (int, error) {
	if m.countPendingErr != nil {
		return 0, m.countPendingErr
	}
	return m.pendingCounts[rdID], nil
}
func (m *mockAssignmentRepo) CountSymptomLogsForRDSince(_ context.Context, rdID uuid.UUID, _ time.Time) (int, error) {
	return m.logCounts[rdID], nil
}

type mockDirectory struct {
	patients map[string]*identity.Profile
}

func (m *mockDirectory) FindPatientByEmail(_ context.Context, email string) (*identity.Profile, error) {
	if p, ok := m.patients[email]; ok {
		return p, nil
	}
	return nil, apperr.ErrNotFound
}

func newTestService() (*Service, *mockAssignmentRepo, *mockDirectory) {
	repo := newMockAssignmentRepo()
	dir := &mockDirectory{patients: make(map[string]*identity.Profile)}
	return NewService(repo, dir), repo, dir
}

// ── Tests ──

func TestAssignCreatesActive(t *testing.T) {
	svc, _, _ := newTestService()
	rd, patient := uuid.New(), uuid.New()

	result, err := svc.Assign(context.Background(), rd, patient)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if result.Reactivated {
		t.Error("fresh assignment reported as reactivated")
	}
	if result.Assignment.Status != StatusActive {
		t.Errorf("status = %q, want active", result.Assignment.Status)
	}
}

func TestAssignDuplicateActiveConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	rd, patient := uuid.New(), uuid.New()

	if _, err := svc.Assign(context.Background(), rd, patient); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	_, err := svc.Assign(context.Background(), rd, patient)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestAssignReactivatesPausedAndDischarged(t *testing.T) {
	for _, prior := range []string{StatusPaused, StatusDischarged} {
		t.Run(prior, func(t *testing.T) {
			svc, repo, _ := newTestService()
			rd, patient := uuid.New(), uuid.New()
			id := uuid.New()
			repo.data[id] = &Assignment{ID: id, RDID: rd, PatientID: patient, Status: prior}

			result, err := svc.Assign(context.Background(), rd, patient)
			if err != nil {
				t.Fatalf("Assign: %v", err)
			}
			if !result.Reactivated {
				t.Error("expected reactivated flag")
			}
			if repo.data[id].Status != StatusActive {
				t.Errorf("status = %q, want active", repo.data[id].Status)
			}
		})
	}
}

func TestAssignConstraintRaceSurfacesConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.createErr = apperr.ErrConflict

	_, err := svc.Assign(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{StatusActive, StatusPaused, true},
		{StatusActive, StatusDischarged, true},
		{StatusPaused, StatusActive, true},
		{StatusPaused, StatusDischarged, true},
		{StatusDischarged, StatusActive, true},
		{StatusDischarged, StatusPaused, false},
		{StatusActive, StatusActive, false},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			svc, repo, _ := newTestService()
			rd := uuid.New()
			id := uuid.New()
			repo.data[id] = &Assignment{ID: id, RDID: rd, PatientID: uuid.New(), Status: tc.from}

			_, err := svc.UpdateStatus(context.Background(), rd, id, tc.to)
			if tc.ok && err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if !tc.ok && !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateStatusForeignAssignmentForbidden(t *testing.T) {
	svc, repo, _ := newTestService()
	id := uuid.New()
	repo.data[id] = &Assignment{ID: id, RDID: uuid.New(), PatientID: uuid.New(), Status: StatusActive}

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), id, StatusPaused)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCanAccessPatientRequiresActiveAssignment(t *testing.T) {
	svc, repo, _ := newTestService()
	rd, patient := uuid.New(), uuid.New()

	if err := svc.CanAccessPatient(context.Background(), rd, patient); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden without assignment", err)
	}

	id := uuid.New()
	repo.data[id] = &Assignment{ID: id, RDID: rd, PatientID: patient, Status: StatusPaused}
	if err := svc.CanAccessPatient(context.Background(), rd, patient); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for paused assignment", err)
	}

	repo.data[id].Status = StatusActive
	if err := svc.CanAccessPatient(context.Background(), rd, patient); err != nil {
		t.Fatalf("CanAccessPatient with active assignment: %v", err)
	}
}

func TestLookupPatientNotFoundMessage(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.LookupPatient(context.Background(), "nobody@example.com")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, repo, _ := newTestService()
	rd := uuid.New()
	for i := 0; i < 3; i++ {
		id := uuid.New()
		repo.data[id] = &Assignment{ID: id, RDID: rd, PatientID: uuid.New(), Status: StatusActive}
	}
	repo.pendingCounts[rd] = 2
	repo.logCounts[rd] = 7

	stats, err := svc.DashboardStats(context.Background(), rd)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.ActivePatients != 3 || stats.PendingAssessments != 2 || stats.RecentSymptomLogs != 7 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDashboardStatsPropagatesError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.countPendingErr = errors.New("db down")

	_, err := svc.DashboardStats(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error from failing counter")
	}
}
