package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/crewcall-hq/crewcall/modules/audit/domain/entities/auditlog"
	"github.com/crewcall-hq/crewcall/modules/audit/services"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/itf"
)

type memAuditRepo struct {
	entries []*auditlog.Entry
}

func (r *memAuditRepo) List(ctx context.Context, params *auditlog.FindParams) ([]*auditlog.Entry, error) {
	return r.entries, nil
}

func (r *memAuditRepo) Count(ctx context.Context, params *auditlog.FindParams) (int64, error) {
	return int64(len(r.entries)), nil
}

func (r *memAuditRepo) Create(ctx context.Context, entry *auditlog.Entry) error {
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func newHandlerFixture(tenantID uuid.UUID) (*memAuditRepo, eventbus.EventBus) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	repo := &memAuditRepo{}
	handler := &DomainEventsHandler{
		service: services.NewAuditService(repo),
		logger:  logger,
		recordCtx: func(id uuid.UUID) context.Context {
			return itf.NewTestContext().WithTenant(id).Build()
		},
	}
	publisher := eventbus.NewEventPublisher(logger)
	publisher.Subscribe(handler.onGigCreated)
	publisher.Subscribe(handler.onGigReconciled)
	publisher.Subscribe(handler.onGigDeleted)
	publisher.Subscribe(handler.onKitAssigned)
	return repo, publisher
}

func TestDomainEventsHandler_GigEvents(t *testing.T) {
	tenantID := uuid.New()
	actor := user.Hydrate(uuid.New(), tenantID, "ops@example.com", "Ops", "User", time.Now(), time.Now())
	ctx := itf.NewTestContext().WithTenant(tenantID).WithUser(actor).Build()

	start := time.Date(2026, time.May, 2, 18, 0, 0, 0, time.UTC)
	g := gig.Hydrate(
		uuid.New(), tenantID, "rooftop session", start, start.Add(4*time.Hour),
		"UTC", gig.StatusBooked, nil, "", nil,
		nil, 0, actor.ID(), actor.ID(), time.Now(), time.Now(),
	)

	repo, publisher := newHandlerFixture(tenantID)
	publisher.Publish(gig.NewCreatedEvent(ctx, g))
	publisher.Publish(gig.NewDeletedEvent(ctx, g.ID()))

	require.Len(t, repo.entries, 2)

	created := repo.entries[0]
	require.Equal(t, "gig.created", created.Action)
	require.Equal(t, "gig", created.EntityType)
	require.Equal(t, g.ID(), created.EntityID)
	require.Equal(t, tenantID, created.TenantID)
	require.Equal(t, actor.ID(), created.ActorID)
	require.Contains(t, string(created.Payload), "rooftop session")

	deleted := repo.entries[1]
	require.Equal(t, "gig.deleted", deleted.Action)
	require.Equal(t, g.ID(), deleted.EntityID)
}

func TestDomainEventsHandler_KitAssignment(t *testing.T) {
	tenantID := uuid.New()
	actor := user.Hydrate(uuid.New(), tenantID, "ops@example.com", "Ops", "User", time.Now(), time.Now())
	ctx := itf.NewTestContext().WithTenant(tenantID).WithUser(actor).Build()

	kitID := uuid.New()
	gigID := uuid.New()

	repo, publisher := newHandlerFixture(tenantID)
	publisher.Publish(kit.NewAssignedToGigEvent(ctx, kitID, gigID))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	require.Equal(t, "kit.assigned", entry.Action)
	require.Equal(t, "kit", entry.EntityType)
	require.Equal(t, kitID, entry.EntityID)
	require.Contains(t, string(entry.Payload), gigID.String())
}

func TestDomainEventsHandler_SkipsEventsWithoutTenant(t *testing.T) {
	repo, publisher := newHandlerFixture(uuid.New())

	// a deleted event built from a context with no tenant carries uuid.Nil
	publisher.Publish(&gig.DeletedEvent{ActorID: uuid.New(), GigID: uuid.New()})

	require.Empty(t, repo.entries)
}
