package organization

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("organization: %w", serrors.ErrNotFound)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Organization, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (Organization, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, o Organization) (Organization, error)

	// MembershipsForUser returns the user's memberships restricted to the
	// given organization set. An empty organizationIDs slice yields no rows.
	MembershipsForUser(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID) ([]Membership, error)
	AddMember(ctx context.Context, m Membership) (Membership, error)
}
