package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{repo: repo, publisher: publisher}
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int64, error) {
	type page struct {
		items []user.User
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		return s.repo.GetByEmail(txCtx, email)
	})
}

func (s *UserService) Create(ctx context.Context, u user.User) (user.User, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (user.User, error) {
		return s.repo.Create(txCtx, u)
	})
}
