package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/inventory/domain/entities/asset"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/constants"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

func validateCommand(cmd any) error {
	if err := constants.Validate.Struct(cmd); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			return fmt.Errorf("%w: %w", serrors.ErrValidation, serrors.ProcessValidatorErrors(vErrs))
		}
		return fmt.Errorf("%w: %v", serrors.ErrValidation, err)
	}
	return nil
}

type AssetService struct {
	repo asset.Repository
}

func NewAssetService(repo asset.Repository) *AssetService {
	return &AssetService{repo: repo}
}

func (s *AssetService) GetPaginated(ctx context.Context, params *asset.FindParams) ([]*asset.Asset, int64, error) {
	type page struct {
		items []*asset.Asset
		total int64
	}
	out, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (page, error) {
		items, total, err := s.repo.GetPaginated(txCtx, params)
		return page{items: items, total: total}, err
	})
	return out.items, out.total, err
}

func (s *AssetService) GetByID(ctx context.Context, id uuid.UUID) (*asset.Asset, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*asset.Asset, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

func (s *AssetService) Create(ctx context.Context, a *asset.Asset) (*asset.Asset, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (*asset.Asset, error) {
		return s.repo.Create(txCtx, a)
	})
}

func (s *AssetService) Update(ctx context.Context, a *asset.Asset) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, a)
	})
}

func (s *AssetService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTenantTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}
