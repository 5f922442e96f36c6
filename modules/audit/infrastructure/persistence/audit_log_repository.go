package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
	"github.com/crewcall-hq/crewcall/modules/audit/infrastructure/persistence/models"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/repo"
)

type PgAuditLogRepository struct{}

func NewAuditLogRepository() auditlog.Repository {
	return &PgAuditLogRepository{}
}

func (r *PgAuditLogRepository) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.Entry, error) {
	if params == nil {
		params = &auditlog.FindParams{}
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildAuditLogFilters(params, tenantID)
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
SELECT id, tenant_id, actor_id, action, entity_type, entity_id, payload, created_at
FROM audit_logs
WHERE %s
ORDER BY created_at DESC, id DESC
LIMIT %d OFFSET %d`, strings.Join(where, " AND "), limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*auditlog.Entry
	for rows.Next() {
		var m models.AuditLog
		if err := rows.Scan(
			&m.ID, &m.TenantID, &m.ActorID, &m.Action,
			&m.EntityType, &m.EntityID, &m.Payload, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, toDomainEntry(&m))
	}
	return out, rows.Err()
}

func (r *PgAuditLogRepository) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return 0, err
	}
	where, args := buildAuditLogFilters(params, tenantID)

	var count int64
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE `+strings.Join(where, " AND "),
		args...,
	).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgAuditLogRepository) Create(ctx context.Context, entry *auditlog.Entry) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	payload := entry.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return tx.QueryRow(ctx, `
INSERT INTO audit_logs (tenant_id, actor_id, action, entity_type, entity_id, payload)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at
`,
		repo.PgUUID(entry.TenantID),
		repo.PgNullableUUID(actorPtr(entry.ActorID)),
		entry.Action,
		entry.EntityType,
		repo.PgUUID(entry.EntityID),
		payload,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func actorPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func buildAuditLogFilters(params *auditlog.FindParams, tenantID uuid.UUID) ([]string, []any) {
	where := []string{"tenant_id = $1"}
	args := []any{repo.PgUUID(tenantID)}
	if params == nil {
		return where, args
	}

	if params.ActorID != uuid.Nil {
		args = append(args, repo.PgUUID(params.ActorID))
		where = append(where, fmt.Sprintf("actor_id = $%d", len(args)))
	}
	if action := strings.TrimSpace(params.Action); action != "" {
		args = append(args, action)
		where = append(where, fmt.Sprintf("action = $%d", len(args)))
	}
	if entityType := strings.TrimSpace(params.EntityType); entityType != "" {
		args = append(args, entityType)
		where = append(where, fmt.Sprintf("entity_type = $%d", len(args)))
	}
	if params.EntityID != uuid.Nil {
		args = append(args, repo.PgUUID(params.EntityID))
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}
	if !params.From.IsZero() {
		args = append(args, params.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !params.To.IsZero() {
		args = append(args, params.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	return where, args
}

func toDomainEntry(m *models.AuditLog) *auditlog.Entry {
	entry := &auditlog.Entry{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt,
	}
	if actor := repo.UUIDPtr(m.ActorID); actor != nil {
		entry.ActorID = *actor
	}
	return entry
}
