package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AuditLog struct {
	ID         int64
	TenantID   uuid.UUID
	ActorID    pgtype.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	Payload    []byte
	CreatedAt  time.Time
}
