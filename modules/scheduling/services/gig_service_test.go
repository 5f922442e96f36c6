package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

func TestGigService_Create(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	act := f.newOrg(organization.TypeAct)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	crew := f.newUser()

	start := time.Date(2026, time.July, 10, 20, 0, 0, 0, time.UTC)
	cmd := &CreateGigCommand{
		Title:  "open air",
		Start:  start,
		End:    start.Add(6 * time.Hour),
		Status: gig.StatusProposed,
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
			{Ref: gig.NewRef(), OrganizationID: act.ID(), Role: organization.TypeAct},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			{
				Ref:            gig.NewRef(),
				OrganizationID: venue.ID(),
				RoleName:       "audio tech",
				RequiredCount:  2,
				Assignments: []gig.DesiredAssignment{
					{Ref: gig.NewRef(), UserID: crew.ID()},
				},
			},
		},
	}

	created, err := f.svc.Create(f.ctx(manager), cmd)
	require.NoError(t, err)
	require.Len(t, created.Participants(), 2)
	require.Len(t, created.StaffSlots(), 1)

	slot := created.StaffSlots()[0]
	require.Equal(t, 2, slot.RequiredCount())
	require.Len(t, slot.Assignments(), 1)
	// omitted status defaults to requested
	require.Equal(t, gig.AssignmentRequested, slot.Assignments()[0].Status())

	role, err := f.roles.GetByID(f.ctx(manager), slot.RoleID())
	require.NoError(t, err)
	require.Equal(t, "audio tech", role.Name())
}

func TestGigService_CreateRequiresManagingMembership(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	staff := f.newUser()
	f.addMember(venue, staff, organization.RoleStaff)

	start := time.Date(2026, time.July, 10, 20, 0, 0, 0, time.UTC)
	cmd := &CreateGigCommand{
		Title:  "open air",
		Start:  start,
		End:    start.Add(6 * time.Hour),
		Status: gig.StatusProposed,
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
	}

	_, err := f.svc.Create(f.ctx(staff), cmd)
	require.ErrorIs(t, err, serrors.ErrAccessDenied)
}

func TestGigService_CreateValidation(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	start := time.Date(2026, time.July, 10, 20, 0, 0, 0, time.UTC)

	t.Run("end before start", func(t *testing.T) {
		_, err := f.svc.Create(f.ctx(manager), &CreateGigCommand{
			Title:  "backwards",
			Start:  start,
			End:    start.Add(-time.Hour),
			Status: gig.StatusProposed,
			Participants: []gig.DesiredParticipant{
				{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
			},
		})
		require.ErrorIs(t, err, serrors.ErrValidation)
	})

	t.Run("no participants", func(t *testing.T) {
		_, err := f.svc.Create(f.ctx(manager), &CreateGigCommand{
			Title:  "orphan",
			Start:  start,
			End:    start.Add(time.Hour),
			Status: gig.StatusProposed,
		})
		require.ErrorIs(t, err, serrors.ErrValidation)
	})

	t.Run("unknown participant role", func(t *testing.T) {
		_, err := f.svc.Create(f.ctx(manager), &CreateGigCommand{
			Title:  "bad role",
			Start:  start,
			End:    start.Add(time.Hour),
			Status: gig.StatusProposed,
			Participants: []gig.DesiredParticipant{
				{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: "circus"},
			},
		})
		require.ErrorIs(t, err, serrors.ErrValidation)
	})
}

func TestGigService_CreateChildGigDepth(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	parent := f.seedGig(venue)

	parentID := parent.ID()
	start := time.Date(2026, time.July, 10, 20, 0, 0, 0, time.UTC)
	child, err := f.svc.Create(f.ctx(manager), &CreateGigCommand{
		Title:       "day two",
		Start:       start,
		End:         start.Add(6 * time.Hour),
		Status:      gig.StatusProposed,
		ParentGigID: &parentID,
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentGigID())
	require.Equal(t, parentID, *child.ParentGigID())
	require.Equal(t, parent.HierarchyDepth()+1, child.HierarchyDepth())
}

func TestGigService_Reconcile(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	act := f.newOrg(organization.TypeAct)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	crew := f.newUser()

	g := f.seedGig(venue)
	persisted, err := f.repo.GetByID(f.ctx(manager), g.ID())
	require.NoError(t, err)
	keep := persisted.Participants()
	require.Len(t, keep, 1)

	result, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.ExistingRef(keep[0].ID()), OrganizationID: venue.ID(), Role: organization.TypeVenue},
			{Ref: gig.NewRef(), OrganizationID: act.ID(), Role: organization.TypeAct},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			{
				Ref:            gig.NewRef(),
				OrganizationID: venue.ID(),
				RoleName:       "stagehand",
				RequiredCount:  3,
				Assignments: []gig.DesiredAssignment{
					{Ref: gig.NewRef(), UserID: crew.ID(), Status: gig.AssignmentConfirmed},
				},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Participants(), 2)
	require.Len(t, result.StaffSlots(), 1)
	require.Equal(t, gig.AssignmentConfirmed, result.StaffSlots()[0].Assignments()[0].Status())
	// the optimistic token moved forward
	require.True(t, result.UpdatedAt().After(g.UpdatedAt()))
}

func TestGigService_ReconcileWriteConflict(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	_, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt().Add(-time.Minute),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
	})
	require.ErrorIs(t, err, serrors.ErrWriteConflict)
}

func TestGigService_ReconcileEmptyDesiredDeletesChildren(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	role, err := f.roles.GetOrCreate(f.ctx(manager), "lighting tech")
	require.NoError(t, err)
	f.repo.seedSlot(gig.HydrateStaffSlot(uuid.New(), f.tenantID, g.ID(), venue.ID(), role.ID(), 1, "", time.Now(), time.Now()))

	result, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
	})
	require.NoError(t, err)
	require.Empty(t, result.Participants())
	require.Empty(t, result.StaffSlots())
}

func TestGigService_ReconcileEmptyAssignmentsUntouched(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	crew := f.newUser()
	g := f.seedGig(venue)

	role, err := f.roles.GetOrCreate(f.ctx(manager), "audio tech")
	require.NoError(t, err)
	slot := gig.HydrateStaffSlot(uuid.New(), f.tenantID, g.ID(), venue.ID(), role.ID(), 1, "", time.Now(), time.Now())
	f.repo.seedSlot(slot)
	f.repo.seedAssignment(gig.HydrateAssignment(
		uuid.New(), f.tenantID, slot.ID(), crew.ID(), gig.AssignmentConfirmed, nil, nil, "", time.Now(), time.Now(),
	))
	persisted, err := f.repo.GetByID(f.ctx(manager), g.ID())
	require.NoError(t, err)

	result, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.ExistingRef(persisted.Participants()[0].ID()), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			// no Assignments given: the confirmed assignment must survive
			{Ref: gig.ExistingRef(slot.ID()), OrganizationID: venue.ID(), RoleName: "audio tech", RequiredCount: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.StaffSlots(), 1)
	require.Len(t, result.StaffSlots()[0].Assignments(), 1)
	require.Equal(t, gig.AssignmentConfirmed, result.StaffSlots()[0].Assignments()[0].Status())
}

func TestGigService_ReconcileOmittedRequiredCountDefaults(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	role, err := f.roles.GetOrCreate(f.ctx(manager), "audio tech")
	require.NoError(t, err)
	slot := gig.HydrateStaffSlot(uuid.New(), f.tenantID, g.ID(), venue.ID(), role.ID(), 2, "", time.Now(), time.Now())
	f.repo.seedSlot(slot)
	persisted, err := f.repo.GetByID(f.ctx(manager), g.ID())
	require.NoError(t, err)

	result, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.ExistingRef(persisted.Participants()[0].ID()), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			// RequiredCount omitted: the update writes the default, never zero
			{Ref: gig.ExistingRef(slot.ID()), OrganizationID: venue.ID(), RoleName: "audio tech"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.StaffSlots(), 1)
	require.Equal(t, 1, result.StaffSlots()[0].RequiredCount())
}

func TestGigService_ReconcileIdempotent(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	act := f.newOrg(organization.TypeAct)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	crew := f.newUser()
	g := f.seedGig(venue)

	first, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
			{Ref: gig.NewRef(), OrganizationID: act.ID(), Role: organization.TypeAct},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			{
				Ref:            gig.NewRef(),
				OrganizationID: venue.ID(),
				RoleName:       "stagehand",
				RequiredCount:  2,
				Assignments: []gig.DesiredAssignment{
					{Ref: gig.NewRef(), UserID: crew.ID(), Status: gig.AssignmentConfirmed},
				},
			},
		},
	})
	require.NoError(t, err)

	// resubmit exactly what the first call returned
	participants := make([]gig.DesiredParticipant, 0, len(first.Participants()))
	for _, p := range first.Participants() {
		participants = append(participants, gig.DesiredParticipant{
			Ref: gig.ExistingRef(p.ID()), OrganizationID: p.OrganizationID(), Role: p.Role(),
		})
	}
	slots := make([]gig.DesiredStaffSlot, 0, len(first.StaffSlots()))
	for _, s := range first.StaffSlots() {
		role, err := f.roles.GetByID(f.ctx(manager), s.RoleID())
		require.NoError(t, err)
		assignments := make([]gig.DesiredAssignment, 0, len(s.Assignments()))
		for _, a := range s.Assignments() {
			assignments = append(assignments, gig.DesiredAssignment{
				Ref: gig.ExistingRef(a.ID()), UserID: a.UserID(), Status: a.Status(),
				Rate: a.Rate(), Fee: a.Fee(), Notes: a.Notes(),
			})
		}
		slots = append(slots, gig.DesiredStaffSlot{
			Ref: gig.ExistingRef(s.ID()), OrganizationID: s.OrganizationID(),
			RoleName: role.Name(), RequiredCount: s.RequiredCount(), Notes: s.Notes(),
			Assignments: assignments,
		})
	}

	second, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: first.UpdatedAt(),
		Participants:      participants,
		StaffSlots:        slots,
	})
	require.NoError(t, err)

	// no row churn: every id survives, nothing is inserted or deleted
	require.ElementsMatch(t, participantIDs(first), participantIDs(second))
	require.ElementsMatch(t, slotIDs(first), slotIDs(second))
	require.ElementsMatch(t, assignmentIDs(first), assignmentIDs(second))
	require.Equal(t, 2, second.StaffSlots()[0].RequiredCount())
}

func TestGigService_ReconcileAbortsMidApply(t *testing.T) {
	f := newFixture()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	publisher := eventbus.NewEventPublisher(logger)
	var reconciled int
	publisher.Subscribe(func(event *gig.ReconciledEvent) { reconciled++ })
	svc := NewGigService(&failingGigRepo{memGigRepo: f.repo, failAfter: 1}, f.roles, f.orgs, f.users, f.gate, publisher)

	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	_, err := svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
		StaffSlots: []gig.DesiredStaffSlot{
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), RoleName: "stagehand"},
			// the second insert fails and must abort the whole apply
			{Ref: gig.NewRef(), OrganizationID: venue.ID(), RoleName: "rigger"},
		},
	})
	require.Error(t, err)
	require.Zero(t, reconciled)
}

func TestGigService_ReconcileStaleRefBecomesInsert(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	result, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
		Participants: []gig.DesiredParticipant{
			// references a participant row that no longer exists
			{Ref: gig.ExistingRef(uuid.New()), OrganizationID: venue.ID(), Role: organization.TypeVenue},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Participants(), 1)
}

func TestGigService_ReconcileUnknownReferences(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	t.Run("unknown organization", func(t *testing.T) {
		_, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
			GigID:             g.ID(),
			ExpectedUpdatedAt: g.UpdatedAt(),
			Participants: []gig.DesiredParticipant{
				{Ref: gig.NewRef(), OrganizationID: uuid.New(), Role: organization.TypeVenue},
			},
		})
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		gg := f.seedGig(venue)
		_, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{
			GigID:             gg.ID(),
			ExpectedUpdatedAt: gg.UpdatedAt(),
			StaffSlots: []gig.DesiredStaffSlot{
				{
					Ref:            gig.NewRef(),
					OrganizationID: venue.ID(),
					RoleName:       "stagehand",
					Assignments: []gig.DesiredAssignment{
						{Ref: gig.NewRef(), UserID: uuid.New()},
					},
				},
			},
		})
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestGigService_ReconcileDeniedForNonManager(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	viewer := f.newUser()
	f.addMember(venue, viewer, organization.RoleViewer)
	g := f.seedGig(venue)

	_, err := f.svc.Reconcile(f.ctx(viewer), &ReconcileCommand{
		GigID:             g.ID(),
		ExpectedUpdatedAt: g.UpdatedAt(),
	})
	require.ErrorIs(t, err, serrors.ErrAccessDenied)
}

func TestGigService_ReconcileMissingToken(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	manager := f.newUser()
	f.addMember(venue, manager, organization.RoleManager)
	g := f.seedGig(venue)

	_, err := f.svc.Reconcile(f.ctx(manager), &ReconcileCommand{GigID: g.ID()})
	require.ErrorIs(t, err, serrors.ErrValidation)
}

func participantIDs(g *gig.Gig) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.Participants()))
	for _, p := range g.Participants() {
		out = append(out, p.ID())
	}
	return out
}

func slotIDs(g *gig.Gig) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(g.StaffSlots()))
	for _, s := range g.StaffSlots() {
		out = append(out, s.ID())
	}
	return out
}

func assignmentIDs(g *gig.Gig) []uuid.UUID {
	var out []uuid.UUID
	for _, s := range g.StaffSlots() {
		for _, a := range s.Assignments() {
			out = append(out, a.ID())
		}
	}
	return out
}

func TestStaffRoleService_GetOrCreateIdempotent(t *testing.T) {
	f := newFixture()
	svc := NewStaffRoleService(f.roles)
	ctx := f.ctx(f.newUser())

	first, err := svc.GetOrCreate(ctx, "  audio tech ")
	require.NoError(t, err)
	second, err := svc.GetOrCreate(ctx, "audio tech")
	require.NoError(t, err)
	require.Equal(t, first.ID(), second.ID())

	_, err = svc.GetOrCreate(ctx, "   ")
	require.ErrorIs(t, err, serrors.ErrValidation)
}
