package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/entities/asset"
	"github.com/crewcall-hq/crewcall/modules/inventory/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

const assetFindQuery = `
SELECT id, tenant_id, organization_id, name, serial_number,
       replacement_value_amount, replacement_value_currency, created_at, updated_at
FROM assets`

type PgAssetRepository struct{}

func NewAssetRepository() asset.Repository {
	return &PgAssetRepository{}
}

func (r *PgAssetRepository) GetPaginated(ctx context.Context, params *asset.FindParams) ([]*asset.Asset, int64, error) {
	if params == nil {
		params = &asset.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}

	conditions := []string{"tenant_id = $1"}
	args := []any{repo.PgUUID(tenantID)}
	if params.OrganizationID != uuid.Nil {
		args = append(args, repo.PgUUID(params.OrganizationID))
		conditions = append(conditions, fmt.Sprintf("organization_id = $%d", len(args)))
	}
	if params.Q != "" {
		args = append(args, "%"+params.Q+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR serial_number ILIKE $%d)", len(args), len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM assets"+where, args...).Scan(&total); err != nil {
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
	query := fmt.Sprintf("%s%s ORDER BY name LIMIT %d OFFSET %d", assetFindQuery, where, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*asset.Asset
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainAsset(m))
	}
	return out, total, rows.Err()
}

func (r *PgAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	m, err := scanAsset(tx.QueryRow(ctx, assetFindQuery+` WHERE id = $1`, repo.PgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, asset.ErrNotFound
		}
		return nil, err
	}
	return toDomainAsset(m), nil
}

func (r *PgAssetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM assets WHERE id = $1)`, repo.PgUUID(id)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgAssetRepository) Create(ctx context.Context, a *asset.Asset) (*asset.Asset, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := tx.QueryRow(ctx, `
INSERT INTO assets (tenant_id, organization_id, name, serial_number, replacement_value_amount, replacement_value_currency)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id
`,
		repo.PgUUID(a.TenantID()),
		repo.PgUUID(a.OrganizationID()),
		a.Name(),
		a.SerialNumber(),
		repo.PgMoneyAmount(a.ReplacementValue()),
		repo.PgMoneyCurrency(a.ReplacementValue()),
	).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PgAssetRepository) Update(ctx context.Context, a *asset.Asset) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE assets
SET name = $2, serial_number = $3, replacement_value_amount = $4, replacement_value_currency = $5, updated_at = now()
WHERE id = $1
`,
		repo.PgUUID(a.ID()),
		a.Name(),
		a.SerialNumber(),
		repo.PgMoneyAmount(a.ReplacementValue()),
		repo.PgMoneyCurrency(a.ReplacementValue()),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrNotFound
	}
	return nil
}

func (r *PgAssetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	pgID := repo.PgUUID(id)
	if _, err := tx.Exec(ctx, `DELETE FROM kit_assets WHERE asset_id = $1`, pgID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM assets WHERE id = $1`, pgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return asset.ErrNotFound
	}
	return nil
}

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.ID, &m.TenantID, &m.OrganizationID, &m.Name, &m.SerialNumber,
		&m.ReplacementValueAmount, &m.ReplacementValueCurrency,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}
