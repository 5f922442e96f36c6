package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/itf"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type fixture struct {
	tenantID uuid.UUID
	repo     *memGigRepo
	orgs     *memOrgRepo
	users    *memUserRepo
	roles    *memRoleRepo
	gate     *AccessGate
	svc      *GigService
}

func newFixture() *fixture {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &fixture{
		tenantID: uuid.New(),
		repo:     newMemGigRepo(),
		orgs:     newMemOrgRepo(),
		users:    newMemUserRepo(),
		roles:    newMemRoleRepo(),
	}
	f.gate = NewAccessGate(f.repo, f.orgs)
	f.svc = NewGigService(f.repo, f.roles, f.orgs, f.users, f.gate, eventbus.NewEventPublisher(logger))
	return f
}

func (f *fixture) newUser() user.User {
	u := user.Hydrate(uuid.New(), f.tenantID, uuid.NewString()+"@example.com", "Test", "User", time.Now(), time.Now())
	f.users.seedUser(u)
	return u
}

func (f *fixture) newOrg(orgType organization.Type) organization.Organization {
	o := organization.Hydrate(uuid.New(), f.tenantID, "org-"+uuid.NewString()[:8], orgType, time.Now(), time.Now())
	f.orgs.seedOrg(o)
	return o
}

func (f *fixture) addMember(o organization.Organization, u user.User, role organization.MemberRole) {
	f.orgs.seedMembership(organization.HydrateMembership(uuid.New(), f.tenantID, o.ID(), u.ID(), role, time.Now()))
}

// seedGig stores a gig with one participant per given organization.
func (f *fixture) seedGig(orgs ...organization.Organization) *gig.Gig {
	start := time.Date(2026, time.June, 5, 19, 0, 0, 0, time.UTC)
	created := time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)
	g := gig.Hydrate(
		uuid.New(), f.tenantID, "loft party", start, start.Add(5*time.Hour),
		"Europe/Berlin", gig.StatusBooked, nil, "", nil,
		nil, 0, uuid.New(), uuid.New(), created, created,
	)
	f.repo.seedGig(g)
	for _, o := range orgs {
		f.repo.seedParticipant(gig.HydrateParticipant(uuid.New(), f.tenantID, g.ID(), o.ID(), o.Type(), created))
	}
	return g
}

func (f *fixture) ctx(u user.User) context.Context {
	return itf.NewTestContext().WithTenant(f.tenantID).WithUser(u).Build()
}

func (f *fixture) anonymousCtx() context.Context {
	return itf.NewTestContext().WithTenant(f.tenantID).Build()
}

func TestAccessGate_MissingGigBeforeIdentity(t *testing.T) {
	f := newFixture()

	// a missing gig reports not-found even without an identity
	err := f.gate.Authorize(f.anonymousCtx(), uuid.New(), CapabilityView)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestAccessGate_Unauthenticated(t *testing.T) {
	f := newFixture()
	org := f.newOrg(organization.TypeVenue)
	g := f.seedGig(org)

	err := f.gate.Authorize(f.anonymousCtx(), g.ID(), CapabilityView)
	require.ErrorIs(t, err, serrors.ErrNotAuthenticated)
}

func TestAccessGate_NoParticipants(t *testing.T) {
	f := newFixture()
	u := f.newUser()
	g := f.seedGig()

	err := f.gate.Authorize(f.ctx(u), g.ID(), CapabilityView)
	require.ErrorIs(t, err, serrors.ErrAccessDenied)
}

func TestAccessGate_ViewRequiresAnyMembership(t *testing.T) {
	f := newFixture()
	org := f.newOrg(organization.TypeVenue)
	g := f.seedGig(org)

	viewer := f.newUser()
	f.addMember(org, viewer, organization.RoleViewer)
	require.NoError(t, f.gate.Authorize(f.ctx(viewer), g.ID(), CapabilityView))

	outsider := f.newUser()
	err := f.gate.Authorize(f.ctx(outsider), g.ID(), CapabilityView)
	require.ErrorIs(t, err, serrors.ErrAccessDenied)
}

func TestAccessGate_ManageRequiresManagingRole(t *testing.T) {
	f := newFixture()
	org := f.newOrg(organization.TypeProduction)
	g := f.seedGig(org)

	tests := []struct {
		role    organization.MemberRole
		allowed bool
	}{
		{organization.RoleAdmin, true},
		{organization.RoleManager, true},
		{organization.RoleStaff, false},
		{organization.RoleViewer, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			u := f.newUser()
			f.addMember(org, u, tt.role)
			err := f.gate.Authorize(f.ctx(u), g.ID(), CapabilityManage)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, serrors.ErrAccessDenied)
			}
		})
	}
}

func TestAccessGate_MembershipInAnyParticipantOrgSuffices(t *testing.T) {
	f := newFixture()
	venue := f.newOrg(organization.TypeVenue)
	act := f.newOrg(organization.TypeAct)
	g := f.seedGig(venue, act)

	u := f.newUser()
	f.addMember(act, u, organization.RoleManager)
	require.NoError(t, f.gate.Authorize(f.ctx(u), g.ID(), CapabilityManage))
}
