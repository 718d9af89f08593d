package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// ── Mock Repositories ──

type mockProfileRepo struct {
	data map[uuid.UUID]*Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{data: make(map[uuid.UUID]*Profile)}
}

func (m *mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	if p, ok := m.data[id]; ok {
		return p, nil
	}
	return nil, apperr.ErrNotFound
}
func (m *mockProfileRepo) GetPatientByEmail(_ context.Context, email string) (*Profile, error) {
	for _, p := range m.data {
		if p.Email == email && p.Role == "patient" {
			return p, nil
		}
	}
	return nil, apperr.ErrNotFound
}
func (m *mockProfileRepo) Upsert(_ context.Context, p *Profile) error {
	m.data[p.ID] = p
	return nil
}
func (m *mockProfileRepo) UpdateFullName(_ context.Context, id uuid.UUID, fullName string) error {
	p, ok := m.data[id]
	if !ok {
		return apperr.ErrNotFound
	}
	p.FullName = fullName
	return nil
}

type mockRDProfileRepo struct {
	data map[uuid.UUID]*RDProfile
}

func newMockRDProfileRepo() *mockRDProfileRepo {
	return &mockRDProfileRepo{data: make(map[uuid.UUID]*RDProfile)}
}

func (m *mockRDProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*RDProfile, error) {
	if rp, ok := m.data[id]; ok {
		return rp, nil
	}
	return nil, apperr.ErrNotFound
}
func (m *mockRDProfileRepo) Upsert(_ context.Context, rp *RDProfile) error {
	m.data[rp.ID] = rp
	return nil
}

func newTestService() (*Service, *mockProfileRepo, *mockRDProfileRepo) {
	profiles := newMockProfileRepo()
	rdProfiles := newMockRDProfileRepo()
	return NewService(profiles, rdProfiles), profiles, rdProfiles
}

// ── Tests ──

func TestFindPatientByEmailNormalizes(t *testing.T) {
	svc, profiles, _ := newTestService()
	id := uuid.New()
	profiles.data[id] = &Profile{ID: id, Email: "jane@example.com", Role: "patient"}

	p, err := svc.FindPatientByEmail(context.Background(), "  Jane@Example.COM ")
	if err != nil {
		t.Fatalf("FindPatientByEmail: %v", err)
	}
	if p.ID != id {
		t.Errorf("found wrong profile: %v", p.ID)
	}
}

func TestFindPatientByEmailIgnoresNonPatients(t *testing.T) {
	svc, profiles, _ := newTestService()
	id := uuid.New()
	profiles.data[id] = &Profile{ID: id, Email: "rd@example.com", Role: "rd"}

	_, err := svc.FindPatientByEmail(context.Background(), "rd@example.com")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFindPatientByEmailRequiresEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.FindPatientByEmail(context.Background(), "   ")
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateFullNameTrimsAndValidates(t *testing.T) {
	svc, profiles, _ := newTestService()
	id := uuid.New()
	profiles.data[id] = &Profile{ID: id, FullName: "Old Name"}

	if err := svc.UpdateFullName(context.Background(), id, "  New Name  "); err != nil {
		t.Fatalf("UpdateFullName: %v", err)
	}
	if profiles.data[id].FullName != "New Name" {
		t.Errorf("full name = %q", profiles.data[id].FullName)
	}

	if err := svc.UpdateFullName(context.Background(), id, "   "); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestEnsureProfileDefaultsToPatient(t *testing.T) {
	svc, profiles, _ := newTestService()
	id := uuid.New()

	if err := svc.EnsureProfile(context.Background(), id, "X@Y.com", "X", ""); err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	p := profiles.data[id]
	if p.Role != "patient" {
		t.Errorf("role = %q, want patient", p.Role)
	}
	if p.Email != "x@y.com" {
		t.Errorf("email = %q, want normalized", p.Email)
	}
}

func TestUpsertRDProfileValidation(t *testing.T) {
	svc, _, rdProfiles := newTestService()
	id := uuid.New()

	err := svc.UpsertRDProfile(context.Background(), &RDProfile{ID: id, LicenseState: "CA"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation for missing license number", err)
	}

	rp := &RDProfile{ID: id, LicenseNumber: "RD12345", LicenseState: "CA",
		Specializations: []string{"pediatric"}, AcceptingPatients: true}
	if err := svc.UpsertRDProfile(context.Background(), rp); err != nil {
		t.Fatalf("UpsertRDProfile: %v", err)
	}
	if rdProfiles.data[id] == nil {
		t.Fatal("rd profile not stored")
	}
}
