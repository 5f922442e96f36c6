package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/modules/scheduling/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

type PgStaffRoleRepository struct{}

func NewStaffRoleRepository() staffrole.Repository {
	return &PgStaffRoleRepository{}
}

func (r *PgStaffRoleRepository) GetAll(ctx context.Context) ([]staffrole.StaffRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT id, name FROM staff_roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []staffrole.StaffRole
	for rows.Next() {
		var m models.StaffRole
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		out = append(out, toDomainStaffRole(m))
	}
	return out, rows.Err()
}

func (r *PgStaffRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (staffrole.StaffRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staffrole.StaffRole{}, err
	}
	var m models.StaffRole
	if err := tx.QueryRow(ctx, `SELECT id, name FROM staff_roles WHERE id = $1`, repo.PgUUID(id)).Scan(&m.ID, &m.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staffrole.StaffRole{}, staffrole.ErrNotFound
		}
		return staffrole.StaffRole{}, err
	}
	return toDomainStaffRole(m), nil
}

// GetOrCreate upserts on the unique name constraint. The no-op DO UPDATE
// makes RETURNING yield the row on both the insert and the conflict path,
// so two transactions racing on the same new name both get the same id.
func (r *PgStaffRoleRepository) GetOrCreate(ctx context.Context, name string) (staffrole.StaffRole, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staffrole.StaffRole{}, err
	}
	var m models.StaffRole
	if err := tx.QueryRow(ctx, `
INSERT INTO staff_roles (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name
`, staffrole.Normalize(name)).Scan(&m.ID, &m.Name); err != nil {
		return staffrole.StaffRole{}, err
	}
	return toDomainStaffRole(m), nil
}
