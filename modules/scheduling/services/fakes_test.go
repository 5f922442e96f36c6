package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

// memGigRepo is an in-memory gig.Repository for service tests. It mirrors
// the persistence contract closely enough to exercise the reconciliation
// sequencing: Claim version checks, level-by-level child writes, cascades.
type memGigRepo struct {
	gigs         map[uuid.UUID]*gig.Gig
	participants map[uuid.UUID]gig.Participant
	slots        map[uuid.UUID]gig.StaffSlot
	assignments  map[uuid.UUID]gig.Assignment
}

func newMemGigRepo() *memGigRepo {
	return &memGigRepo{
		gigs:         make(map[uuid.UUID]*gig.Gig),
		participants: make(map[uuid.UUID]gig.Participant),
		slots:        make(map[uuid.UUID]gig.StaffSlot),
		assignments:  make(map[uuid.UUID]gig.Assignment),
	}
}

func (r *memGigRepo) seedGig(g *gig.Gig) {
	r.gigs[g.ID()] = g
}

func (r *memGigRepo) seedParticipant(p gig.Participant) {
	r.participants[p.ID()] = p
}

func (r *memGigRepo) seedSlot(s gig.StaffSlot) {
	r.slots[s.ID()] = s
}

func (r *memGigRepo) seedAssignment(a gig.Assignment) {
	r.assignments[a.ID()] = a
}

func (r *memGigRepo) GetPaginated(ctx context.Context, params *gig.FindParams) ([]*gig.Gig, int64, error) {
	out := make([]*gig.Gig, 0, len(r.gigs))
	for id := range r.gigs {
		g, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, int64(len(out)), nil
}

func (r *memGigRepo) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	stored, ok := r.gigs[id]
	if !ok {
		return nil, gig.ErrNotFound
	}
	g := gig.Hydrate(
		stored.ID(), stored.TenantID(), stored.Title(), stored.Start(), stored.End(),
		stored.Timezone(), stored.Status(), stored.Tags(), stored.Notes(), stored.AmountPaid(),
		stored.ParentGigID(), stored.HierarchyDepth(), stored.CreatedBy(), stored.UpdatedBy(),
		stored.CreatedAt(), stored.UpdatedAt(),
	)
	participants, _ := r.Participants(ctx, id)
	g.SetParticipants(participants)
	slots, _ := r.StaffSlots(ctx, id)
	for i := range slots {
		assignments, _ := r.Assignments(ctx, slots[i].ID())
		slots[i].SetAssignments(assignments)
	}
	g.SetStaffSlots(slots)
	return g, nil
}

func (r *memGigRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.gigs[id]
	return ok, nil
}

func (r *memGigRepo) Create(ctx context.Context, g *gig.Gig) (*gig.Gig, error) {
	now := time.Now()
	created := gig.Hydrate(
		uuid.New(), g.TenantID(), g.Title(), g.Start(), g.End(),
		g.Timezone(), g.Status(), g.Tags(), g.Notes(), g.AmountPaid(),
		g.ParentGigID(), g.HierarchyDepth(), g.CreatedBy(), g.UpdatedBy(),
		now, now,
	)
	r.gigs[created.ID()] = created
	return created, nil
}

func (r *memGigRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.gigs[id]; !ok {
		return gig.ErrNotFound
	}
	delete(r.gigs, id)
	for pid, p := range r.participants {
		if p.GigID() == id {
			delete(r.participants, pid)
		}
	}
	for sid, s := range r.slots {
		if s.GigID() != id {
			continue
		}
		for aid, a := range r.assignments {
			if a.SlotID() == sid {
				delete(r.assignments, aid)
			}
		}
		delete(r.slots, sid)
	}
	return nil
}

func (r *memGigRepo) Claim(ctx context.Context, id uuid.UUID, expected time.Time, updatedBy uuid.UUID) (time.Time, error) {
	stored, ok := r.gigs[id]
	if !ok {
		return time.Time{}, gig.ErrNotFound
	}
	if !stored.UpdatedAt().Equal(expected) {
		return time.Time{}, fmt.Errorf("gig %s: %w", id, serrors.ErrWriteConflict)
	}
	now := time.Now()
	r.gigs[id] = gig.Hydrate(
		stored.ID(), stored.TenantID(), stored.Title(), stored.Start(), stored.End(),
		stored.Timezone(), stored.Status(), stored.Tags(), stored.Notes(), stored.AmountPaid(),
		stored.ParentGigID(), stored.HierarchyDepth(), stored.CreatedBy(), updatedBy,
		stored.CreatedAt(), now,
	)
	return now, nil
}

func (r *memGigRepo) ParentInfo(ctx context.Context, id uuid.UUID) (*uuid.UUID, int, error) {
	stored, ok := r.gigs[id]
	if !ok {
		return nil, 0, gig.ErrNotFound
	}
	return stored.ParentGigID(), stored.HierarchyDepth(), nil
}

func (r *memGigRepo) ParticipantOrgIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, p := range r.participants {
		if p.GigID() != gigID {
			continue
		}
		if _, dup := seen[p.OrganizationID()]; dup {
			continue
		}
		seen[p.OrganizationID()] = struct{}{}
		out = append(out, p.OrganizationID())
	}
	return out, nil
}

func (r *memGigRepo) Participants(ctx context.Context, gigID uuid.UUID) ([]gig.Participant, error) {
	var out []gig.Participant
	for _, p := range r.participants {
		if p.GigID() == gigID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memGigRepo) InsertParticipant(ctx context.Context, p gig.Participant) (gig.Participant, error) {
	created := gig.HydrateParticipant(uuid.New(), p.TenantID(), p.GigID(), p.OrganizationID(), p.Role(), time.Now())
	r.participants[created.ID()] = created
	return created, nil
}

func (r *memGigRepo) UpdateParticipant(ctx context.Context, p gig.Participant) error {
	if _, ok := r.participants[p.ID()]; !ok {
		return gig.ErrNotFound
	}
	r.participants[p.ID()] = p
	return nil
}

func (r *memGigRepo) DeleteParticipants(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.participants, id)
	}
	return nil
}

func (r *memGigRepo) StaffSlots(ctx context.Context, gigID uuid.UUID) ([]gig.StaffSlot, error) {
	var out []gig.StaffSlot
	for _, s := range r.slots {
		if s.GigID() == gigID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memGigRepo) InsertStaffSlot(ctx context.Context, s gig.StaffSlot) (gig.StaffSlot, error) {
	now := time.Now()
	created := gig.HydrateStaffSlot(uuid.New(), s.TenantID(), s.GigID(), s.OrganizationID(), s.RoleID(), s.RequiredCount(), s.Notes(), now, now)
	r.slots[created.ID()] = created
	return created, nil
}

func (r *memGigRepo) UpdateStaffSlot(ctx context.Context, s gig.StaffSlot) error {
	if _, ok := r.slots[s.ID()]; !ok {
		return gig.ErrNotFound
	}
	r.slots[s.ID()] = s
	return nil
}

func (r *memGigRepo) DeleteStaffSlots(ctx context.Context, gigID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		for aid, a := range r.assignments {
			if a.SlotID() == id {
				delete(r.assignments, aid)
			}
		}
		delete(r.slots, id)
	}
	return nil
}

func (r *memGigRepo) Assignments(ctx context.Context, slotID uuid.UUID) ([]gig.Assignment, error) {
	var out []gig.Assignment
	for _, a := range r.assignments {
		if a.SlotID() == slotID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memGigRepo) InsertAssignment(ctx context.Context, a gig.Assignment) (gig.Assignment, error) {
	now := time.Now()
	created := gig.HydrateAssignment(uuid.New(), a.TenantID(), a.SlotID(), a.UserID(), a.Status(), a.Rate(), a.Fee(), a.Notes(), now, now)
	r.assignments[created.ID()] = created
	return created, nil
}

func (r *memGigRepo) UpdateAssignment(ctx context.Context, a gig.Assignment) error {
	if _, ok := r.assignments[a.ID()]; !ok {
		return gig.ErrNotFound
	}
	r.assignments[a.ID()] = a
	return nil
}

func (r *memGigRepo) DeleteAssignments(ctx context.Context, slotID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.assignments, id)
	}
	return nil
}

// failingGigRepo passes writes through until failAfter staff slot inserts
// have happened, then fails every further one.
type failingGigRepo struct {
	*memGigRepo
	failAfter int
	inserts   int
}

func (r *failingGigRepo) InsertStaffSlot(ctx context.Context, s gig.StaffSlot) (gig.StaffSlot, error) {
	r.inserts++
	if r.inserts > r.failAfter {
		return gig.StaffSlot{}, errors.New("connection reset")
	}
	return r.memGigRepo.InsertStaffSlot(ctx, s)
}

type memOrgRepo struct {
	orgs        map[uuid.UUID]organization.Organization
	memberships []organization.Membership
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{orgs: make(map[uuid.UUID]organization.Organization)}
}

func (r *memOrgRepo) seedOrg(o organization.Organization) {
	r.orgs[o.ID()] = o
}

func (r *memOrgRepo) seedMembership(m organization.Membership) {
	r.memberships = append(r.memberships, m)
}

func (r *memOrgRepo) GetPaginated(ctx context.Context, params *organization.FindParams) ([]organization.Organization, int64, error) {
	out := make([]organization.Organization, 0, len(r.orgs))
	for _, o := range r.orgs {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (r *memOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return organization.Organization{}, organization.ErrNotFound
	}
	return o, nil
}

func (r *memOrgRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.orgs[id]
	return ok, nil
}

func (r *memOrgRepo) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	created := organization.Hydrate(uuid.New(), o.TenantID(), o.Name(), o.Type(), time.Now(), time.Now())
	r.orgs[created.ID()] = created
	return created, nil
}

func (r *memOrgRepo) MembershipsForUser(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID) ([]organization.Membership, error) {
	wanted := make(map[uuid.UUID]struct{}, len(organizationIDs))
	for _, id := range organizationIDs {
		wanted[id] = struct{}{}
	}
	var out []organization.Membership
	for _, m := range r.memberships {
		if m.UserID() != userID {
			continue
		}
		if _, ok := wanted[m.OrganizationID()]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memOrgRepo) AddMember(ctx context.Context, m organization.Membership) (organization.Membership, error) {
	created := organization.HydrateMembership(uuid.New(), m.TenantID(), m.OrganizationID(), m.UserID(), m.Role(), time.Now())
	r.memberships = append(r.memberships, created)
	return created, nil
}

type memUserRepo struct {
	users map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *memUserRepo) seedUser(u user.User) {
	r.users[u.ID()] = u
}

func (r *memUserRepo) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	out := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *memUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *memUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	created := user.Hydrate(uuid.New(), u.TenantID(), u.Email(), u.FirstName(), u.LastName(), time.Now(), time.Now())
	r.users[created.ID()] = created
	return created, nil
}

type memRoleRepo struct {
	roles map[string]staffrole.StaffRole
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[string]staffrole.StaffRole)}
}

func (r *memRoleRepo) GetAll(ctx context.Context) ([]staffrole.StaffRole, error) {
	out := make([]staffrole.StaffRole, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	return out, nil
}

func (r *memRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (staffrole.StaffRole, error) {
	for _, role := range r.roles {
		if role.ID() == id {
			return role, nil
		}
	}
	return staffrole.StaffRole{}, fmt.Errorf("staff role %s: %w", id, serrors.ErrNotFound)
}

func (r *memRoleRepo) GetOrCreate(ctx context.Context, name string) (staffrole.StaffRole, error) {
	normalized := staffrole.Normalize(name)
	if role, ok := r.roles[normalized]; ok {
		return role, nil
	}
	role := staffrole.Hydrate(uuid.New(), normalized)
	r.roles[normalized] = role
	return role, nil
}
