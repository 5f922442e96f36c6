package dtos

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
)

type EntryResponse struct {
	ID         int64           `json:"id"`
	ActorID    *uuid.UUID      `json:"actorId,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   uuid.UUID       `json:"entityId"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func EntryToResponse(e *auditlog.Entry) EntryResponse {
	out := EntryResponse{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Payload:    e.Payload,
		CreatedAt:  e.CreatedAt,
	}
	if e.ActorID != uuid.Nil {
		actor := e.ActorID
		out.ActorID = &actor
	}
	return out
}
