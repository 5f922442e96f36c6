package gig

import (
	"context"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/composables"
)

func actorID(ctx context.Context) uuid.UUID {
	u, err := composables.UseUser(ctx)
	if err != nil {
		return uuid.Nil
	}
	return u.ID()
}

type CreatedEvent struct {
	ActorID uuid.UUID
	Result  *Gig
}

func NewCreatedEvent(ctx context.Context, result *Gig) *CreatedEvent {
	return &CreatedEvent{ActorID: actorID(ctx), Result: result}
}

type ReconciledEvent struct {
	ActorID uuid.UUID
	Result  *Gig
}

func NewReconciledEvent(ctx context.Context, result *Gig) *ReconciledEvent {
	return &ReconciledEvent{ActorID: actorID(ctx), Result: result}
}

type DeletedEvent struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	GigID    uuid.UUID
}

func NewDeletedEvent(ctx context.Context, gigID uuid.UUID) *DeletedEvent {
	tenantID, _ := composables.UseTenantID(ctx)
	return &DeletedEvent{ActorID: actorID(ctx), TenantID: tenantID, GigID: gigID}
}
