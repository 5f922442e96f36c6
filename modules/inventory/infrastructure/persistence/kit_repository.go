package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/inventory/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

const kitFindQuery = `
SELECT id, tenant_id, organization_id, name, category, tags, tag_number,
       rental_value_amount, rental_value_currency, created_at, updated_at
FROM kits`

type PgKitRepository struct{}

func NewKitRepository() kit.Repository {
	return &PgKitRepository{}
}

func (r *PgKitRepository) GetPaginated(ctx context.Context, params *kit.FindParams) ([]*kit.Kit, int64, error) {
	if params == nil {
		params = &kit.FindParams{}
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
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM kits"+where, args...).Scan(&total); err != nil {
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
	query := fmt.Sprintf("%s%s ORDER BY name LIMIT %d OFFSET %d", kitFindQuery, where, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*kit.Kit
	for rows.Next() {
		m, err := scanKit(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainKit(m))
	}
	return out, total, rows.Err()
}

func (r *PgKitRepository) GetByID(ctx context.Context, id uuid.UUID) (*kit.Kit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	m, err := scanKit(tx.QueryRow(ctx, kitFindQuery+` WHERE id = $1 AND tenant_id = $2`, repo.PgUUID(id), repo.PgUUID(tenantID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, kit.ErrNotFound
		}
		return nil, err
	}
	k := toDomainKit(m)

	rows, err := tx.Query(ctx, `
SELECT kit_id, asset_id, quantity, notes FROM kit_assets WHERE kit_id = $1 ORDER BY asset_id
`, repo.PgUUID(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []kit.KitAsset
	for rows.Next() {
		var am models.KitAsset
		if err := rows.Scan(&am.KitID, &am.AssetID, &am.Quantity, &am.Notes); err != nil {
			return nil, err
		}
		assets = append(assets, toDomainKitAsset(am))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	k.SetAssets(assets)
	return k, nil
}

func (r *PgKitRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM kits WHERE id = $1 AND tenant_id = $2)`, repo.PgUUID(id), repo.PgUUID(tenantID)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgKitRepository) Create(ctx context.Context, k *kit.Kit) (*kit.Kit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if err := tx.QueryRow(ctx, `
INSERT INTO kits (tenant_id, organization_id, name, category, tags, tag_number, rental_value_amount, rental_value_currency)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id
`,
		repo.PgUUID(k.TenantID()),
		repo.PgUUID(k.OrganizationID()),
		k.Name(),
		k.Category(),
		k.Tags(),
		k.TagNumber(),
		repo.PgMoneyAmount(k.RentalValue()),
		repo.PgMoneyCurrency(k.RentalValue()),
	).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PgKitRepository) Update(ctx context.Context, k *kit.Kit) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
UPDATE kits
SET name = $2, category = $3, tags = $4, tag_number = $5,
    rental_value_amount = $6, rental_value_currency = $7, updated_at = now()
WHERE id = $1
`,
		repo.PgUUID(k.ID()),
		k.Name(),
		k.Category(),
		k.Tags(),
		k.TagNumber(),
		repo.PgMoneyAmount(k.RentalValue()),
		repo.PgMoneyCurrency(k.RentalValue()),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kit.ErrNotFound
	}
	return nil
}

func (r *PgKitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	pgID := repo.PgUUID(id)
	if _, err := tx.Exec(ctx, `DELETE FROM gig_kit_assignments WHERE kit_id = $1`, pgID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM kit_assets WHERE kit_id = $1`, pgID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM kits WHERE id = $1`, pgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kit.ErrNotFound
	}
	return nil
}

func (r *PgKitRepository) PutAsset(ctx context.Context, a kit.KitAsset) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO kit_assets (kit_id, asset_id, quantity, notes)
VALUES ($1, $2, $3, $4)
ON CONFLICT (kit_id, asset_id) DO UPDATE SET quantity = EXCLUDED.quantity, notes = EXCLUDED.notes
`, repo.PgUUID(a.KitID()), repo.PgUUID(a.AssetID()), int32(a.Quantity()), a.Notes())
	return err
}

func (r *PgKitRepository) RemoveAsset(ctx context.Context, kitID, assetID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM kit_assets WHERE kit_id = $1 AND asset_id = $2`, repo.PgUUID(kitID), repo.PgUUID(assetID))
	return err
}

func (r *PgKitRepository) AssetIDs(ctx context.Context, kitID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT asset_id FROM kit_assets WHERE kit_id = $1`, repo.PgUUID(kitID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PgKitRepository) OverlappingUsage(ctx context.Context, excludeGigID uuid.UUID, start, end time.Time, policy kit.BoundaryPolicy) ([]kit.GigUsage, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	overlap := `g.start_at <= $3 AND g.end_at >= $2`
	if policy == kit.BoundaryExclusive {
		overlap = `g.start_at < $3 AND g.end_at > $2`
	}

	rows, err := tx.Query(ctx, `
SELECT DISTINCT g.id, g.title, g.start_at, g.end_at, ka.asset_id
FROM gig_kit_assignments gka
JOIN gigs g ON g.id = gka.gig_id
JOIN kit_assets ka ON ka.kit_id = gka.kit_id
WHERE g.tenant_id = $4 AND g.id <> $1 AND `+overlap+`
ORDER BY g.id
`, repo.PgUUID(excludeGigID), start, end, repo.PgUUID(tenantID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []kit.GigUsage
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			gigID   uuid.UUID
			title   string
			startAt time.Time
			endAt   time.Time
			assetID uuid.UUID
		)
		if err := rows.Scan(&gigID, &title, &startAt, &endAt, &assetID); err != nil {
			return nil, err
		}
		i, ok := index[gigID]
		if !ok {
			i = len(out)
			index[gigID] = i
			out = append(out, kit.GigUsage{GigID: gigID, Title: title, Start: startAt, End: endAt})
		}
		out[i].AssetIDs = append(out[i].AssetIDs, assetID)
	}
	return out, rows.Err()
}

func (r *PgKitRepository) AssignToGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
INSERT INTO gig_kit_assignments (kit_id, gig_id)
VALUES ($1, $2)
ON CONFLICT (kit_id, gig_id) DO NOTHING
`, repo.PgUUID(kitID), repo.PgUUID(gigID))
	return err
}

func (r *PgKitRepository) UnassignFromGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM gig_kit_assignments WHERE kit_id = $1 AND gig_id = $2`, repo.PgUUID(kitID), repo.PgUUID(gigID))
	return err
}

func (r *PgKitRepository) AssignedKitIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT kit_id FROM gig_kit_assignments WHERE gig_id = $1`, repo.PgUUID(gigID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanKit(row pgx.Row) (models.Kit, error) {
	var m models.Kit
	err := row.Scan(
		&m.ID, &m.TenantID, &m.OrganizationID, &m.Name, &m.Category, &m.Tags,
		&m.TagNumber, &m.RentalValueAmount, &m.RentalValueCurrency,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}
