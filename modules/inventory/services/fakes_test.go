package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/composables"
)

// memKitRepo is an in-memory kit.Repository. OverlappingUsage filters a
// seeded usage list the way the SQL query does: scoped to the context tenant,
// by window overlap under the policy, excluding the candidate gig itself.
type memKitRepo struct {
	kits        map[uuid.UUID]*kit.Kit
	assets      map[uuid.UUID][]kit.KitAsset
	assignments map[uuid.UUID][]uuid.UUID
	usages      map[uuid.UUID][]kit.GigUsage
}

func newMemKitRepo() *memKitRepo {
	return &memKitRepo{
		kits:        make(map[uuid.UUID]*kit.Kit),
		assets:      make(map[uuid.UUID][]kit.KitAsset),
		assignments: make(map[uuid.UUID][]uuid.UUID),
		usages:      make(map[uuid.UUID][]kit.GigUsage),
	}
}

func (r *memKitRepo) seedKit(k *kit.Kit) {
	r.kits[k.ID()] = k
}

func (r *memKitRepo) seedUsage(tenantID uuid.UUID, u kit.GigUsage) {
	r.usages[tenantID] = append(r.usages[tenantID], u)
}

func (r *memKitRepo) GetPaginated(ctx context.Context, params *kit.FindParams) ([]*kit.Kit, int64, error) {
	out := make([]*kit.Kit, 0, len(r.kits))
	for id := range r.kits {
		k, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, k)
	}
	return out, int64(len(out)), nil
}

func (r *memKitRepo) GetByID(ctx context.Context, id uuid.UUID) (*kit.Kit, error) {
	stored, ok := r.kits[id]
	if !ok {
		return nil, kit.ErrNotFound
	}
	k := kit.Hydrate(
		stored.ID(), stored.TenantID(), stored.OrganizationID(), stored.Name(),
		stored.Category(), stored.Tags(), stored.TagNumber(), stored.RentalValue(),
		stored.CreatedAt(), stored.UpdatedAt(),
	)
	k.SetAssets(r.assets[id])
	return k, nil
}

func (r *memKitRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.kits[id]
	return ok, nil
}

func (r *memKitRepo) Create(ctx context.Context, k *kit.Kit) (*kit.Kit, error) {
	now := time.Now()
	created := kit.Hydrate(
		uuid.New(), k.TenantID(), k.OrganizationID(), k.Name(),
		k.Category(), k.Tags(), k.TagNumber(), k.RentalValue(),
		now, now,
	)
	r.kits[created.ID()] = created
	return created, nil
}

func (r *memKitRepo) Update(ctx context.Context, k *kit.Kit) error {
	if _, ok := r.kits[k.ID()]; !ok {
		return kit.ErrNotFound
	}
	r.kits[k.ID()] = k
	return nil
}

func (r *memKitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.kits[id]; !ok {
		return kit.ErrNotFound
	}
	delete(r.kits, id)
	delete(r.assets, id)
	delete(r.assignments, id)
	return nil
}

func (r *memKitRepo) PutAsset(ctx context.Context, a kit.KitAsset) error {
	entries := r.assets[a.KitID()]
	for i, existing := range entries {
		if existing.AssetID() == a.AssetID() {
			entries[i] = a
			return nil
		}
	}
	r.assets[a.KitID()] = append(entries, a)
	return nil
}

func (r *memKitRepo) RemoveAsset(ctx context.Context, kitID, assetID uuid.UUID) error {
	entries := r.assets[kitID]
	for i, existing := range entries {
		if existing.AssetID() == assetID {
			r.assets[kitID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memKitRepo) AssetIDs(ctx context.Context, kitID uuid.UUID) ([]uuid.UUID, error) {
	entries := r.assets[kitID]
	ids := make([]uuid.UUID, 0, len(entries))
	for _, a := range entries {
		ids = append(ids, a.AssetID())
	}
	return ids, nil
}

func (r *memKitRepo) OverlappingUsage(ctx context.Context, excludeGigID uuid.UUID, start, end time.Time, policy kit.BoundaryPolicy) ([]kit.GigUsage, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	var out []kit.GigUsage
	for _, u := range r.usages[tenantID] {
		if u.GigID == excludeGigID {
			continue
		}
		if kit.Overlaps(policy, start, end, u.Start, u.End) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memKitRepo) AssignToGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	for _, id := range r.assignments[kitID] {
		if id == gigID {
			return nil
		}
	}
	r.assignments[kitID] = append(r.assignments[kitID], gigID)
	return nil
}

func (r *memKitRepo) UnassignFromGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	ids := r.assignments[kitID]
	for i, id := range ids {
		if id == gigID {
			r.assignments[kitID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memKitRepo) AssignedKitIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for kitID, gigs := range r.assignments {
		for _, id := range gigs {
			if id == gigID {
				out = append(out, kitID)
			}
		}
	}
	return out, nil
}

// fakeGigRepo covers the slice of gig.Repository the kit service and access
// gate touch. Anything else panics on the embedded nil interface.
type fakeGigRepo struct {
	gig.Repository
	gigs    map[uuid.UUID]*gig.Gig
	orgsFor map[uuid.UUID][]uuid.UUID
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{
		gigs:    make(map[uuid.UUID]*gig.Gig),
		orgsFor: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeGigRepo) seedGig(g *gig.Gig, orgIDs ...uuid.UUID) {
	r.gigs[g.ID()] = g
	r.orgsFor[g.ID()] = orgIDs
}

func (r *fakeGigRepo) GetByID(ctx context.Context, id uuid.UUID) (*gig.Gig, error) {
	g, ok := r.gigs[id]
	if !ok {
		return nil, gig.ErrNotFound
	}
	return g, nil
}

func (r *fakeGigRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.gigs[id]
	return ok, nil
}

func (r *fakeGigRepo) ParticipantOrgIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error) {
	return r.orgsFor[gigID], nil
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
