package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

// Capability is the access level requested against one gig.
type Capability int

const (
	// CapabilityView requires any membership in a participant organization.
	CapabilityView Capability = iota
	// CapabilityManage requires an admin or manager membership in a
	// participant organization.
	CapabilityManage
)

// AccessGate decides gig access from organization memberships. A gig is
// reachable only through the organizations participating in it: no
// participants means nobody passes, not even the gig's creator.
type AccessGate struct {
	gigs gig.Repository
	orgs organization.Repository
}

func NewAccessGate(gigs gig.Repository, orgs organization.Repository) *AccessGate {
	return &AccessGate{gigs: gigs, orgs: orgs}
}

// Authorize checks the acting user against the gig's participant
// organizations. Existence is checked first, so a missing gig surfaces as
// gig.ErrNotFound rather than an access error.
func (g *AccessGate) Authorize(ctx context.Context, gigID uuid.UUID, capability Capability) error {
	found, err := g.gigs.Exists(ctx, gigID)
	if err != nil {
		return err
	}
	if !found {
		return gig.ErrNotFound
	}

	u, err := composables.UseUser(ctx)
	if err != nil {
		return serrors.ErrNotAuthenticated
	}

	orgIDs, err := g.gigs.ParticipantOrgIDs(ctx, gigID)
	if err != nil {
		return err
	}
	if len(orgIDs) == 0 {
		return serrors.ErrAccessDenied
	}

	memberships, err := g.orgs.MembershipsForUser(ctx, u.ID(), orgIDs)
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if capability == CapabilityView {
			return nil
		}
		if m.Role().CanManageGigs() {
			return nil
		}
	}
	return serrors.ErrAccessDenied
}
