package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blendwell/blendwell/internal/platform/apperr"
)

// =========== Profile Repository ===========

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepoPG{pool: pool}
}

const profileCols = `id, email, full_name, role, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &p, err
}

func (r *profileRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE id = $1`, id))
}

func (r *profileRepoPG) GetPatientByEmail(ctx context.Context, email string) (*Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE email = $1 AND role = 'patient'`, email))
}

func (r *profileRepoPG) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, email, full_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			updated_at = NOW()`,
		p.ID, p.Email, p.FullName, p.Role)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *profileRepoPG) UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET full_name = $2, updated_at = NOW() WHERE id = $1`,
		id, fullName)
	if err != nil {
		return fmt.Errorf("update full name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// =========== RD Profile Repository ===========

type rdProfileRepoPG struct{ pool *pgxpool.Pool }

func NewRDProfileRepoPG(pool *pgxpool.Pool) RDProfileRepository {
	return &rdProfileRepoPG{pool: pool}
}

func (r *rdProfileRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*RDProfile, error) {
	var rp RDProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, license_number, license_state, specializations, bio,
			accepting_patients, created_at, updated_at
		FROM rd_profiles WHERE id = $1`, id).
		Scan(&rp.ID, &rp.LicenseNumber, &rp.LicenseState, &rp.Specializations,
			&rp.Bio, &rp.AcceptingPatients, &rp.CreatedAt, &rp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	return &rp, err
}

func (r *rdProfileRepoPG) Upsert(ctx context.Context, rp *RDProfile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO rd_profiles (id, license_number, license_state,
			specializations, bio, accepting_patients)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			license_number = EXCLUDED.license_number,
			license_state = EXCLUDED.license_state,
			specializations = EXCLUDED.specializations,
			bio = EXCLUDED.bio,
			accepting_patients = EXCLUDED.accepting_patients,
			updated_at = NOW()`,
		rp.ID, rp.LicenseNumber, rp.LicenseState, rp.Specializations,
		rp.Bio, rp.AcceptingPatients)
	if err != nil {
		return fmt.Errorf("upsert rd profile: %w", err)
	}
	return nil
}
