package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewcall-hq/crewcall/modules/core/domain/entities/tenant"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

type PgTenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &PgTenantRepository{}
}

func (r *PgTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var (
		name      string
		domain    string
		isActive  bool
		createdAt time.Time
		updatedAt time.Time
	)
	if err := tx.QueryRow(ctx, `
SELECT name, COALESCE(domain, ''), is_active, created_at, updated_at
FROM tenants WHERE id = $1
`, repo.PgUUID(id)).Scan(&name, &domain, &isActive, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}
		return nil, err
	}
	return tenant.Hydrate(id, name, domain, isActive, createdAt, updatedAt), nil
}

func (r *PgTenantRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tenants WHERE id = $1)`, repo.PgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgTenantRepository) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `
INSERT INTO tenants (id, name, domain, is_active)
VALUES ($1, $2, NULLIF($3, ''), $4)
ON CONFLICT (id) DO NOTHING
`, repo.PgUUID(t.ID()), t.Name(), t.Domain(), t.IsActive()); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t.ID())
}
