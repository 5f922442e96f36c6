package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/organization"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type OrganizationService struct {
	repo      organization.Repository
	publisher eventbus.EventBus
}

func NewOrganizationService(repo organization.Repository, publisher eventbus.EventBus) *OrganizationService {
	return &OrganizationService{repo: repo, publisher: publisher}
}

func (s *OrganizationService) GetPaginated(ctx context.Context, params *organization.FindParams) ([]organization.Organization, int64, error) {
	type page struct {
		items []organization.Organization
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (organization.Organization, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (organization.Organization, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *OrganizationService) Create(ctx context.Context, o organization.Organization) (organization.Organization, error) {
	if !o.Type().IsValid() {
		return organization.Organization{}, fmt.Errorf("%w: unknown organization type %q", serrors.ErrValidation, o.Type())
	}
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (organization.Organization, error) {
		return s.repo.Create(txCtx, o)
	})
}

// AddMember links a user to the organization. The repository rejects
// duplicate (organization, user) pairs.
func (s *OrganizationService) AddMember(ctx context.Context, m organization.Membership) (organization.Membership, error) {
	if !m.Role().IsValid() {
		return organization.Membership{}, fmt.Errorf("%w: unknown member role %q", serrors.ErrValidation, m.Role())
	}
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (organization.Membership, error) {
		return s.repo.AddMember(txCtx, m)
	})
}

func (s *OrganizationService) MembershipsForUser(ctx context.Context, userID uuid.UUID, organizationIDs []uuid.UUID) ([]organization.Membership, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]organization.Membership, error) {
		return s.repo.MembershipsForUser(txCtx, userID, organizationIDs)
	})
}
