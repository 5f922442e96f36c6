package kit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

var ErrNotFound = fmt.Errorf("kit: %w", serrors.ErrNotFound)

type FindParams struct {
	OrganizationID uuid.UUID
	Q              string
	Category       string
	Limit          int
	Offset         int
}

// Repository persists kits, their asset membership rows and their gig
// assignments. OverlappingUsage is the read side of conflict detection: it
// collects, per gig, the union of asset ids across every kit assigned to a
// gig whose window overlaps the candidate window.
type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]*Kit, int64, error)
	// GetByID hydrates the kit with its KitAsset entries.
	GetByID(ctx context.Context, id uuid.UUID) (*Kit, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, k *Kit) (*Kit, error)
	Update(ctx context.Context, k *Kit) error
	// Delete cascades to kit_assets and gig assignment rows.
	Delete(ctx context.Context, id uuid.UUID) error

	// PutAsset upserts on the (kit, asset) key: adding an asset already in
	// the kit replaces its quantity and notes.
	PutAsset(ctx context.Context, a KitAsset) error
	RemoveAsset(ctx context.Context, kitID, assetID uuid.UUID) error
	AssetIDs(ctx context.Context, kitID uuid.UUID) ([]uuid.UUID, error)

	// OverlappingUsage returns asset usage of every gig in the context
	// tenant, except excludeGigID, whose window overlaps [start, end] under
	// the given boundary policy. Gigs without a window or without kit
	// assignments never appear.
	OverlappingUsage(ctx context.Context, excludeGigID uuid.UUID, start, end time.Time, policy BoundaryPolicy) ([]GigUsage, error)

	AssignToGig(ctx context.Context, kitID, gigID uuid.UUID) error
	UnassignFromGig(ctx context.Context, kitID, gigID uuid.UUID) error
	AssignedKitIDs(ctx context.Context, gigID uuid.UUID) ([]uuid.UUID, error)
}
