package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/aggregates/gig"
	schedulingservices "github.com/crewcall-hq/crewcall/modules/scheduling/services"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/metrics"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

// CreateKitCommand carries a new kit's fields. The owning organization is
// fixed at creation.
type CreateKitCommand struct {
	OrganizationID uuid.UUID `validate:"required"`
	Name           string    `validate:"required"`
	Category       string
	Tags           []string
	TagNumber      string
	RentalValue    *money.Money
}

type KitService struct {
	repo      kit.Repository
	gigs      gig.Repository
	orgs      organization.Repository
	gate      *schedulingservices.AccessGate
	policy    kit.BoundaryPolicy
	publisher eventbus.EventBus
}

func NewKitService(
	repo kit.Repository,
	gigs gig.Repository,
	orgs organization.Repository,
	gate *schedulingservices.AccessGate,
	policy kit.BoundaryPolicy,
	publisher eventbus.EventBus,
) *KitService {
	return &KitService{
		repo:      repo,
		gigs:      gigs,
		orgs:      orgs,
		gate:      gate,
		policy:    policy,
		publisher: publisher,
	}
}

func (s *KitService) GetPaginated(ctx context.Context, params *kit.FindParams) ([]*kit.Kit, int64, error) {
	type page struct {
		items []*kit.Kit
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

func (s *KitService) GetByID(ctx context.Context, id uuid.UUID) (*kit.Kit, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*kit.Kit, error) {
		k, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return nil, err
		}
		if err := s.authorizeKit(txCtx, k, false); err != nil {
			return nil, err
		}
		return k, nil
	})
}

func (s *KitService) Create(ctx context.Context, cmd *CreateKitCommand) (*kit.Kit, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*kit.Kit, error) {
		found, err := s.orgs.Exists(txCtx, cmd.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("organization %s: %w", cmd.OrganizationID, organization.ErrNotFound)
		}
		if err := s.authorizeOrg(txCtx, cmd.OrganizationID, true); err != nil {
			return nil, err
		}
		created, err := s.repo.Create(txCtx, kit.New(
			tenantID,
			cmd.OrganizationID,
			cmd.Name,
			kit.WithCategory(cmd.Category),
			kit.WithTags(cmd.Tags),
			kit.WithTagNumber(cmd.TagNumber),
			kit.WithRentalValue(cmd.RentalValue),
		))
		if err != nil {
			return nil, err
		}
		s.publisher.Publish(kit.NewCreatedEvent(txCtx, created))
		return created, nil
	})
}

func (s *KitService) Update(ctx context.Context, k *kit.Kit) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if err := s.authorizeKit(txCtx, k, true); err != nil {
			return err
		}
		if err := s.repo.Update(txCtx, k); err != nil {
			return err
		}
		s.publisher.Publish(kit.NewUpdatedEvent(txCtx, k))
		return nil
	})
}

func (s *KitService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		k, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.authorizeKit(txCtx, k, true); err != nil {
			return err
		}
		if err := s.repo.Delete(txCtx, id); err != nil {
			return err
		}
		s.publisher.Publish(kit.NewDeletedEvent(txCtx, id))
		return nil
	})
}

// PutAsset adds an asset to the kit or, if the asset is already in it,
// replaces the entry's quantity and notes.
func (s *KitService) PutAsset(ctx context.Context, kitID, assetID uuid.UUID, quantity int, notes string) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", serrors.ErrValidation)
	}
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		k, err := s.repo.GetByID(txCtx, kitID)
		if err != nil {
			return err
		}
		if err := s.authorizeKit(txCtx, k, true); err != nil {
			return err
		}
		return s.repo.PutAsset(txCtx, kit.NewKitAsset(kitID, assetID, quantity, notes))
	})
}

func (s *KitService) RemoveAsset(ctx context.Context, kitID, assetID uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		k, err := s.repo.GetByID(txCtx, kitID)
		if err != nil {
			return err
		}
		if err := s.authorizeKit(txCtx, k, true); err != nil {
			return err
		}
		return s.repo.RemoveAsset(txCtx, kitID, assetID)
	})
}

// FindConflicts is the advisory read: would assigning this kit to this gig
// double-book any asset? A zero start and end use the gig's stored window; an
// explicit window checks a prospective reschedule instead. It never blocks
// anything; callers surface the reports to the user.
func (s *KitService) FindConflicts(ctx context.Context, kitID, gigID uuid.UUID, start, end time.Time) ([]kit.ConflictReport, error) {
	reports, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]kit.ConflictReport, error) {
		return s.findConflicts(txCtx, kitID, gigID, start, end)
	})
	metrics.ConflictChecksTotal.WithLabelValues(conflictOutcome(reports, err)).Inc()
	return reports, err
}

// AssignToGig associates the kit with the gig. The conflict check re-runs
// inside the transaction: an overlap that appeared since the advisory read
// fails the assignment with serrors.ErrConflictDetected.
func (s *KitService) AssignToGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if err := s.gate.Authorize(txCtx, gigID, schedulingservices.CapabilityManage); err != nil {
			return err
		}
		reports, err := s.findConflicts(txCtx, kitID, gigID, time.Time{}, time.Time{})
		metrics.ConflictChecksTotal.WithLabelValues(conflictOutcome(reports, err)).Inc()
		if err != nil {
			return err
		}
		if len(reports) > 0 {
			return fmt.Errorf("%w: kit %s collides with %d gig(s)", serrors.ErrConflictDetected, kitID, len(reports))
		}
		if err := s.repo.AssignToGig(txCtx, kitID, gigID); err != nil {
			return err
		}
		s.publisher.Publish(kit.NewAssignedToGigEvent(txCtx, kitID, gigID))
		return nil
	})
}

func (s *KitService) UnassignFromGig(ctx context.Context, kitID, gigID uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		if err := s.gate.Authorize(txCtx, gigID, schedulingservices.CapabilityManage); err != nil {
			return err
		}
		if err := s.repo.UnassignFromGig(txCtx, kitID, gigID); err != nil {
			return err
		}
		s.publisher.Publish(kit.NewUnassignedFromGigEvent(txCtx, kitID, gigID))
		return nil
	})
}

func conflictOutcome(reports []kit.ConflictReport, err error) string {
	switch {
	case err != nil:
		return "error"
	case len(reports) > 0:
		return "conflict"
	}
	return "clear"
}

func (s *KitService) findConflicts(ctx context.Context, kitID, gigID uuid.UUID, start, end time.Time) ([]kit.ConflictReport, error) {
	k, err := s.repo.GetByID(ctx, kitID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeKit(ctx, k, false); err != nil {
		return nil, err
	}
	switch {
	case start.IsZero() && end.IsZero():
		g, err := s.gigs.GetByID(ctx, gigID)
		if err != nil {
			return nil, err
		}
		start, end = g.Start(), g.End()
	case start.IsZero() || end.IsZero():
		return nil, fmt.Errorf("%w: candidate window needs both start and end", serrors.ErrValidation)
	case !end.After(start):
		return nil, fmt.Errorf("%w: candidate window end must be after start", serrors.ErrValidation)
	}

	assetIDs := k.AssetIDs()
	if len(assetIDs) == 0 {
		return nil, nil
	}
	usages, err := s.repo.OverlappingUsage(ctx, gigID, start, end, s.policy)
	if err != nil {
		return nil, err
	}
	return kit.DetectConflicts(assetIDs, usages), nil
}

// authorizeKit gates kit access on membership in the kit's owning
// organization: any membership to read, a manage-capable one to mutate.
func (s *KitService) authorizeKit(ctx context.Context, k *kit.Kit, manage bool) error {
	return s.authorizeOrg(ctx, k.OrganizationID(), manage)
}

func (s *KitService) authorizeOrg(ctx context.Context, orgID uuid.UUID, manage bool) error {
	u, err := composables.UseUser(ctx)
	if err != nil {
		return serrors.ErrNotAuthenticated
	}
	memberships, err := s.orgs.MembershipsForUser(ctx, u.ID(), []uuid.UUID{orgID})
	if err != nil {
		return err
	}
	for _, m := range memberships {
		if !manage {
			return nil
		}
		if m.Role().CanManageGigs() {
			return nil
		}
	}
	return serrors.ErrAccessDenied
}
