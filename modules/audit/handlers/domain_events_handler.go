package handlers

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
	"github.com/crewcall-hq/crewcall/modules/audit/services"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/configuration"
)

// DomainEventsHandler turns published domain events into audit log entries.
// Recording is best effort: a failed write is logged and dropped, it never
// affects the operation that raised the event.
type DomainEventsHandler struct {
	service *services.AuditService
	logger  *logrus.Logger

	// recordCtx builds the context entries are persisted under; handlers run
	// outside any request so they cannot reuse the originating context.
	recordCtx func(tenantID uuid.UUID) context.Context
}

func RegisterDomainEventHandlers(app application.Application) {
	handler := &DomainEventsHandler{
		service: app.Service(services.AuditService{}).(*services.AuditService),
		logger:  configuration.Use().Logger(),
		recordCtx: func(tenantID uuid.UUID) context.Context {
			ctx := composables.WithPool(context.Background(), app.DB())
			return composables.WithTenantID(ctx, tenantID)
		},
	}
	publisher := app.EventPublisher()
	publisher.Subscribe(handler.onGigCreated)
	publisher.Subscribe(handler.onGigReconciled)
	publisher.Subscribe(handler.onGigDeleted)
	publisher.Subscribe(handler.onKitCreated)
	publisher.Subscribe(handler.onKitUpdated)
	publisher.Subscribe(handler.onKitDeleted)
	publisher.Subscribe(handler.onKitAssigned)
	publisher.Subscribe(handler.onKitUnassigned)
}

func (h *DomainEventsHandler) onGigCreated(event *gig.CreatedEvent) {
	h.record(event.Result.TenantID(), &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "gig.created",
		EntityType: "gig",
		EntityID:   event.Result.ID(),
		Payload: marshalPayload(map[string]any{
			"title": event.Result.Title(),
			"start": event.Result.Start(),
			"end":   event.Result.End(),
		}),
	})
}

func (h *DomainEventsHandler) onGigReconciled(event *gig.ReconciledEvent) {
	h.record(event.Result.TenantID(), &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "gig.reconciled",
		EntityType: "gig",
		EntityID:   event.Result.ID(),
		Payload: marshalPayload(map[string]any{
			"participants": len(event.Result.Participants()),
			"staff_slots":  len(event.Result.StaffSlots()),
		}),
	})
}

func (h *DomainEventsHandler) onGigDeleted(event *gig.DeletedEvent) {
	h.record(event.TenantID, &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "gig.deleted",
		EntityType: "gig",
		EntityID:   event.GigID,
	})
}

func (h *DomainEventsHandler) onKitCreated(event *kit.CreatedEvent) {
	h.record(event.Result.TenantID(), &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "kit.created",
		EntityType: "kit",
		EntityID:   event.Result.ID(),
		Payload:    marshalPayload(map[string]any{"name": event.Result.Name()}),
	})
}

func (h *DomainEventsHandler) onKitUpdated(event *kit.UpdatedEvent) {
	h.record(event.Result.TenantID(), &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "kit.updated",
		EntityType: "kit",
		EntityID:   event.Result.ID(),
	})
}

func (h *DomainEventsHandler) onKitDeleted(event *kit.DeletedEvent) {
	h.record(event.TenantID, &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "kit.deleted",
		EntityType: "kit",
		EntityID:   event.KitID,
	})
}

func (h *DomainEventsHandler) onKitAssigned(event *kit.AssignedToGigEvent) {
	h.record(event.TenantID, &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "kit.assigned",
		EntityType: "kit",
		EntityID:   event.KitID,
		Payload:    marshalPayload(map[string]any{"gig_id": event.GigID}),
	})
}

func (h *DomainEventsHandler) onKitUnassigned(event *kit.UnassignedFromGigEvent) {
	h.record(event.TenantID, &auditlog.Entry{
		ActorID:    event.ActorID,
		Action:     "kit.unassigned",
		EntityType: "kit",
		EntityID:   event.KitID,
		Payload:    marshalPayload(map[string]any{"gig_id": event.GigID}),
	})
}

func (h *DomainEventsHandler) record(tenantID uuid.UUID, entry *auditlog.Entry) {
	if tenantID == uuid.Nil {
		return
	}
	entry.TenantID = tenantID

	if err := h.service.Record(h.recordCtx(tenantID), entry); err != nil {
		h.logger.WithError(err).
			WithField("action", entry.Action).
			Warn("failed to persist audit log entry")
	}
}

func marshalPayload(v map[string]any) json.RawMessage {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return payload
}
