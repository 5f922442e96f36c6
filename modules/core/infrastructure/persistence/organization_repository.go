package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

const (
	orgFindQuery  = `SELECT id, tenant_id, name, type, created_at, updated_at FROM organizations`
	orgCountQuery = `SELECT COUNT(*) FROM organizations`
)

type PgOrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &PgOrganizationRepository{}
}

func (r *PgOrganizationRepository) GetPaginated(ctx context.Context, params *organization.FindParams) ([]organization.Organization, int64, error) {
	if params == nil {
		params = &organization.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := ` WHERE tenant_id = $1`
	args := []any{repo.PgUUID(tenantID)}
	if params.Q != "" {
		where += ` AND name ILIKE $2`
		args = append(args, "%"+params.Q+"%")
	}

	var total int64
	if err := tx.QueryRow(ctx, orgCountQuery+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf("%s%s ORDER BY name LIMIT %d OFFSET %d", orgFindQuery, where, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []organization.Organization
	for rows.Next() {
		var m models.Organization
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Name, &m.Type, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainOrganization(m))
	}
	return out, total, rows.Err()
}

func (r *PgOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}
	var m models.Organization
	if err := tx.QueryRow(ctx, orgFindQuery+` WHERE id = $1`, repo.PgUUID(id)).Scan(
		&m.ID, &m.TenantID, &m.Name, &m.Type, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Organization{}, organization.ErrNotFound
		}
		return organization.Organization{}, err
	}
	return toDomainOrganization(m), nil
}

func (r *PgOrganizationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`, repo.PgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgOrganizationRepository) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, `
INSERT INTO organizations (tenant_id, name, type)
VALUES ($1, $2, $3)
RETURNING id
`, repo.PgUUID(o.TenantID()), o.Name(), string(o.Type())).Scan(&id); err != nil {
		return organization.Organization{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PgOrganizationRepository) MembershipsForUser(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID) ([]organization.Membership, error) {
	if len(organizationIDs) == 0 {
		return nil, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, tenant_id, organization_id, user_id, role, created_at
FROM organization_memberships
WHERE user_id = $1 AND organization_id = ANY($2)
`, repo.PgUUID(userID), pgtype.FlatArray[uuid.UUID](organizationIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []organization.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.TenantID, &m.OrganizationID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainMembership(m))
	}
	return out, rows.Err()
}

func (r *PgOrganizationRepository) AddMember(ctx context.Context, m organization.Membership) (organization.Membership, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Membership{}, err
	}

	var row models.Membership
	if err := tx.QueryRow(ctx, `
INSERT INTO organization_memberships (tenant_id, organization_id, user_id, role)
VALUES ($1, $2, $3, $4)
RETURNING id, tenant_id, organization_id, user_id, role, created_at
`, repo.PgUUID(m.TenantID()), repo.PgUUID(m.OrganizationID()), repo.PgUUID(m.UserID()), string(m.Role())).Scan(
		&row.ID, &row.TenantID, &row.OrganizationID, &row.UserID, &row.Role, &row.CreatedAt,
	); err != nil {
		if repo.IsUniqueViolation(err) {
			return organization.Membership{}, fmt.Errorf("%w: user is already a member", serrors.ErrValidation)
		}
		return organization.Membership{}, err
	}
	return toDomainMembership(row), nil
}
