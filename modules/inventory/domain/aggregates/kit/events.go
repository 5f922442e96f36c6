package kit

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
	Result  *Kit
}

func NewCreatedEvent(ctx context.Context, result *Kit) *CreatedEvent {
	return &CreatedEvent{ActorID: actorID(ctx), Result: result}
}

type UpdatedEvent struct {
	ActorID uuid.UUID
	Result  *Kit
}

func NewUpdatedEvent(ctx context.Context, result *Kit) *UpdatedEvent {
	return &UpdatedEvent{ActorID: actorID(ctx), Result: result}
}

type DeletedEvent struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	KitID    uuid.UUID
}

func NewDeletedEvent(ctx context.Context, kitID uuid.UUID) *DeletedEvent {
	tenantID, _ := composables.UseTenantID(ctx)
	return &DeletedEvent{ActorID: actorID(ctx), TenantID: tenantID, KitID: kitID}
}

type AssignedToGigEvent struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	KitID    uuid.UUID
	GigID    uuid.UUID
}

func NewAssignedToGigEvent(ctx context.Context, kitID, gigID uuid.UUID) *AssignedToGigEvent {
	tenantID, _ := composables.UseTenantID(ctx)
	return &AssignedToGigEvent{ActorID: actorID(ctx), TenantID: tenantID, KitID: kitID, GigID: gigID}
}

type UnassignedFromGigEvent struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	KitID    uuid.UUID
	GigID    uuid.UUID
}

func NewUnassignedFromGigEvent(ctx context.Context, kitID, gigID uuid.UUID) *UnassignedFromGigEvent {
	tenantID, _ := composables.UseTenantID(ctx)
	return &UnassignedFromGigEvent{ActorID: actorID(ctx), TenantID: tenantID, KitID: kitID, GigID: gigID}
}
