package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/scheduling/domain/entities/staffrole"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/serrors"
)

type StaffRoleService struct {
	repo staffrole.Repository
}

func NewStaffRoleService(repo staffrole.Repository) *StaffRoleService {
	return &StaffRoleService{repo: repo}
}

func (s *StaffRoleService) GetAll(ctx context.Context) ([]staffrole.StaffRole, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]staffrole.StaffRole, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *StaffRoleService) GetByID(ctx context.Context, id uuid.UUID) (staffrole.StaffRole, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (staffrole.StaffRole, error) {
		return s.repo.GetByID(txCtx, id)
	})
}

// GetOrCreate resolves a role by name, creating it on first use. Safe to
// call concurrently for the same name; the repository upserts.
func (s *StaffRoleService) GetOrCreate(ctx context.Context, name string) (staffrole.StaffRole, error) {
	if staffrole.Normalize(name) == "" {
		return staffrole.StaffRole{}, fmt.Errorf("%w: staff role name is required", serrors.ErrValidation)
	}
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (staffrole.StaffRole, error) {
		return s.repo.GetOrCreate(txCtx, name)
	})
}
