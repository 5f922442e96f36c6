package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

const (
	gigFindQuery = `
SELECT id, tenant_id, title, start_at, end_at, timezone, status, tags, notes,
       amount_paid_amount, amount_paid_currency, parent_gig_id, hierarchy_depth,
       created_by, updated_by, created_at, updated_at
FROM gigs`

	participantFindQuery = `
SELECT id, tenant_id, gig_id, organization_id, role, created_at
FROM gig_participants`

	staffSlotFindQuery = `
SELECT id, tenant_id, gig_id, organization_id, role_id, required_count, notes, created_at, updated_at
FROM staff_slots`

	assignmentFindQuery = `
SELECT id, tenant_id, slot_id, user_id, status, rate_amount, rate_currency,
       fee_amount, fee_currency, notes, created_at, updated_at
FROM staff_assignments`
)

type PgGigRepository struct{}

func NewGigRepository() gig.Repository {
	return &PgGigRepository{}
}

func (r *PgGigRepository) GetPaginated(ctx context.Context, params *gig.FindParams) ([]*gig.Gig, int64, error) {
	if params == nil {
		params = &gig.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}

	var conditions []string
	args := []any{repo.PgUUID(tenantID)}
	conditions = append(conditions, "tenant_id = $1")
	if params.Q != "" {
		args = append(args, "%"+params.Q+"%")
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if params.Status != "" {
		args = append(args, string(params.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if !params.From.IsZero() {
		args = append(args, params.From)
		conditions = append(conditions, fmt.Sprintf("end_at >= $%d", len(args)))
	}
	if !params.To.IsZero() {
		args = append(args, params.To)
		conditions = append(conditions, fmt.Sprintf("start_at <= $%d", len(args)))
	}
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int64
	if err := tx.QueryRow(ctx, "SELECT COUNT(*) FROM gigs"+where, args...).Scan(&total); err != nil {
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
	query := fmt.Sprintf("%s%s ORDER BY start_at LIMIT %d OFFSET %d", gigFindQuery, where, limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*gig.Gig
	for rows.Next() {
		m, err := scanGig(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, toDomainGig(m))
	}
	return out, total, rows.Err()
}

func (r *PgGigRepository) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, gigFindQuery+` WHERE id = $1 AND tenant_id = $2`, repo.PgUUID(id), repo.PgUUID(tenantID))
	m, err := scanGig(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gig.ErrNotFound
		}
		return nil, err
	}
	g := toDomainGig(m)

	participants, err := r.Participants(ctx, id)
	if err != nil {
		return nil, err
	}
	g.SetParticipants(participants)

	slots, err := r.StaffSlots(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		slotIDs := make([]uuid.UUID, 0, len(slots))
		for _, s := range slots {
			slotIDs = append(slotIDs, s.ID())
		}
		bySlot, err := r.assignmentsBySlot(ctx, slotIDs)
		if err != nil {
			return nil, err
		}
		for i := range slots {
			slots[i].SetAssignments(bySlot[slots[i].ID()])
		}
	}
	g.SetStaffSlots(slots)
	return g, nil
}

func (r *PgGigRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM gigs WHERE id = $1 AND tenant_id = $2)`, repo.PgUUID(id), repo.PgUUID(tenantID)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgGigRepository) Create(ctx context.Context, g *gig.Gig) (*gig.Gig, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	if err := tx.QueryRow(ctx, `
INSERT INTO gigs (
	tenant_id, title, start_at, end_at, timezone, status, tags, notes,
	amount_paid_amount, amount_paid_currency, parent_gig_id, hierarchy_depth,
	created_by, updated_by
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
RETURNING id
`,
		repo.PgUUID(g.TenantID()),
		g.Title(),
		g.Start(),
		g.End(),
		g.Timezone(),
		string(g.Status()),
		g.Tags(),
		g.Notes(),
		repo.PgMoneyAmount(g.AmountPaid()),
		repo.PgMoneyCurrency(g.AmountPaid()),
		repo.PgNullableUUID(g.ParentGigID()),
		int32(g.HierarchyDepth()),
		repo.PgUUID(g.CreatedBy()),
		repo.PgUUID(g.UpdatedBy()),
	).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PgGigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	pgID := repo.PgUUID(id)

	if _, err := tx.Exec(ctx, `DELETE FROM gig_kit_assignments WHERE gig_id = $1`, pgID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
DELETE FROM staff_assignments WHERE slot_id IN (SELECT id FROM staff_slots WHERE gig_id = $1)`, pgID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM staff_slots WHERE gig_id = $1`, pgID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM gig_participants WHERE gig_id = $1`, pgID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM gigs WHERE id = $1`, pgID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return gig.ErrNotFound
	}
	return nil
}

func (r *PgGigRepository) Claim(ctx context.Context, id uuid.UUID, expected time.Time, updatedBy uuid.UUID) (time.Time, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return time.Time{}, err
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return time.Time{}, err
	}

	var updatedAt time.Time
	err = tx.QueryRow(ctx, `
UPDATE gigs SET updated_at = now(), updated_by = $3
WHERE id = $1 AND updated_at = $2 AND tenant_id = $4
RETURNING updated_at
`, repo.PgUUID(id), expected, repo.PgUUID(updatedBy), repo.PgUUID(tenantID)).Scan(&updatedAt)
	if err == nil {
		return updatedAt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, err
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return time.Time{}, err
	}
	if !exists {
		return time.Time{}, gig.ErrNotFound
	}
	return time.Time{}, fmt.Errorf("gig %s: %w", id, serrors.ErrWriteConflict)
}

func (r *PgGigRepository) ParentInfo(ctx context.Context, id uuid.UUID) (*uuid.UUID, int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, 0, err
	}
	var parentID pgtype.UUID
	var depth int32
	if err := tx.QueryRow(ctx, `SELECT parent_gig_id, hierarchy_depth FROM gigs WHERE id = $1 AND tenant_id = $2`, repo.PgUUID(id), repo.PgUUID(tenantID)).Scan(&parentID, &depth); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, gig.ErrNotFound
		}
		return nil, 0, err
	}
	return repo.UUIDPtr(parentID), int(depth), nil
}

func (r *PgGigRepository) ParticipantOrgIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, `SELECT DISTINCT organization_id FROM gig_participants WHERE gig_id = $1`, repo.PgUUID(gigID))
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

func (r *PgGigRepository) Participants(ctx context.Context, gigID uuid.UUID) ([]gig.Participant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, participantFindQuery+` WHERE gig_id = $1 ORDER BY created_at`, repo.PgUUID(gigID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gig.Participant
	for rows.Next() {
		var m models.Participant
		if err := rows.Scan(&m.ID, &m.TenantID, &m.GigID, &m.OrganizationID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainParticipant(m))
	}
	return out, rows.Err()
}

func (r *PgGigRepository) InsertParticipant(ctx context.Context, p gig.Participant) (gig.Participant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return gig.Participant{}, err
	}
	var m models.Participant
	if err := tx.QueryRow(ctx, `
INSERT INTO gig_participants (tenant_id, gig_id, organization_id, role)
VALUES ($1, $2, $3, $4)
RETURNING id, tenant_id, gig_id, organization_id, role, created_at
`, repo.PgUUID(p.TenantID()), repo.PgUUID(p.GigID()), repo.PgUUID(p.OrganizationID()), string(p.Role())).Scan(
		&m.ID, &m.TenantID, &m.GigID, &m.OrganizationID, &m.Role, &m.CreatedAt,
	); err != nil {
		return gig.Participant{}, err
	}
	return toDomainParticipant(m), nil
}

func (r *PgGigRepository) UpdateParticipant(ctx context.Context, p gig.Participant) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE gig_participants SET organization_id = $2, role = $3 WHERE id = $1
`, repo.PgUUID(p.ID()), repo.PgUUID(p.OrganizationID()), string(p.Role()))
	return err
}

func (r *PgGigRepository) DeleteParticipants(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM gig_participants WHERE gig_id = $1 AND id = ANY($2)
`, repo.PgUUID(gigID), pgtype.FlatArray[uuid.UUID](ids))
	return err
}

func (r *PgGigRepository) StaffSlots(ctx context.Context, gigID uuid.UUID) ([]gig.StaffSlot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, staffSlotFindQuery+` WHERE gig_id = $1 ORDER BY created_at`, repo.PgUUID(gigID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []gig.StaffSlot
	for rows.Next() {
		var m models.StaffSlot
		if err := rows.Scan(&m.ID, &m.TenantID, &m.GigID, &m.OrganizationID, &m.RoleID, &m.RequiredCount, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, toDomainStaffSlot(m))
	}
	return out, rows.Err()
}

func (r *PgGigRepository) InsertStaffSlot(ctx context.Context, s gig.StaffSlot) (gig.StaffSlot, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return gig.StaffSlot{}, err
	}
	var m models.StaffSlot
	if err := tx.QueryRow(ctx, `
INSERT INTO staff_slots (tenant_id, gig_id, organization_id, role_id, required_count, notes)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, tenant_id, gig_id, organization_id, role_id, required_count, notes, created_at, updated_at
`, repo.PgUUID(s.TenantID()), repo.PgUUID(s.GigID()), repo.PgUUID(s.OrganizationID()), repo.PgUUID(s.RoleID()), int32(s.RequiredCount()), s.Notes()).Scan(
		&m.ID, &m.TenantID, &m.GigID, &m.OrganizationID, &m.RoleID, &m.RequiredCount, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return gig.StaffSlot{}, err
	}
	return toDomainStaffSlot(m), nil
}

func (r *PgGigRepository) UpdateStaffSlot(ctx context.Context, s gig.StaffSlot) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE staff_slots
SET organization_id = $2, role_id = $3, required_count = $4, notes = $5, updated_at = now()
WHERE id = $1
`, repo.PgUUID(s.ID()), repo.PgUUID(s.OrganizationID()), repo.PgUUID(s.RoleID()), int32(s.RequiredCount()), s.Notes())
	return err
}

func (r *PgGigRepository) DeleteStaffSlots(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	pgIDs := pgtype.FlatArray[uuid.UUID](ids)
	if _, err := tx.Exec(ctx, `DELETE FROM staff_assignments WHERE slot_id = ANY($1)`, pgIDs); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM staff_slots WHERE gig_id = $1 AND id = ANY($2)`, repo.PgUUID(gigID), pgIDs)
	return err
}

func (r *PgGigRepository) Assignments(ctx context.Context, slotID uuid.UUID) ([]gig.Assignment, error) {
	bySlot, err := r.assignmentsBySlot(ctx, []uuid.UUID{slotID})
	if err != nil {
		return nil, err
	}
	return bySlot[slotID], nil
}

func (r *PgGigRepository) InsertAssignment(ctx context.Context, a gig.Assignment) (gig.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return gig.Assignment{}, err
	}
	var m models.Assignment
	if err := tx.QueryRow(ctx, `
INSERT INTO staff_assignments (tenant_id, slot_id, user_id, status, rate_amount, rate_currency, fee_amount, fee_currency, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id, tenant_id, slot_id, user_id, status, rate_amount, rate_currency, fee_amount, fee_currency, notes, created_at, updated_at
`,
		repo.PgUUID(a.TenantID()),
		repo.PgUUID(a.SlotID()),
		repo.PgUUID(a.UserID()),
		string(a.Status()),
		repo.PgMoneyAmount(a.Rate()),
		repo.PgMoneyCurrency(a.Rate()),
		repo.PgMoneyAmount(a.Fee()),
		repo.PgMoneyCurrency(a.Fee()),
		a.Notes(),
	).Scan(
		&m.ID, &m.TenantID, &m.SlotID, &m.UserID, &m.Status,
		&m.RateAmount, &m.RateCurrency, &m.FeeAmount, &m.FeeCurrency,
		&m.Notes, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return gig.Assignment{}, err
	}
	return toDomainAssignment(m), nil
}

func (r *PgGigRepository) UpdateAssignment(ctx context.Context, a gig.Assignment) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
UPDATE staff_assignments
SET user_id = $2, status = $3, rate_amount = $4, rate_currency = $5,
    fee_amount = $6, fee_currency = $7, notes = $8, updated_at = now()
WHERE id = $1
`,
		repo.PgUUID(a.ID()),
		repo.PgUUID(a.UserID()),
		string(a.Status()),
		repo.PgMoneyAmount(a.Rate()),
		repo.PgMoneyCurrency(a.Rate()),
		repo.PgMoneyAmount(a.Fee()),
		repo.PgMoneyCurrency(a.Fee()),
		a.Notes(),
	)
	return err
}

func (r *PgGigRepository) DeleteAssignments(ctx context.Context, slotID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
DELETE FROM staff_assignments WHERE slot_id = $1 AND id = ANY($2)
`, repo.PgUUID(slotID), pgtype.FlatArray[uuid.UUID](ids))
	return err
}

func (r *PgGigRepository) assignmentsBySlot(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID][]gig.Assignment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, assignmentFindQuery+` WHERE slot_id = ANY($1) ORDER BY created_at`, pgtype.FlatArray[uuid.UUID](slotIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]gig.Assignment, len(slotIDs))
	for rows.Next() {
		var m models.Assignment
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.SlotID, &m.UserID, &m.Status,
			&m.RateAmount, &m.RateCurrency, &m.FeeAmount, &m.FeeCurrency,
			&m.Notes, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out[m.SlotID] = append(out[m.SlotID], toDomainAssignment(m))
	}
	return out, rows.Err()
}

func scanGig(row pgx.Row) (models.Gig, error) {
	var m models.Gig
	err := row.Scan(
		&m.ID, &m.TenantID, &m.Title, &m.StartAt, &m.EndAt, &m.Timezone, &m.Status,
		&m.Tags, &m.Notes, &m.AmountPaidAmount, &m.AmountPaidCurrency,
		&m.ParentGigID, &m.HierarchyDepth, &m.CreatedBy, &m.UpdatedBy,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}
