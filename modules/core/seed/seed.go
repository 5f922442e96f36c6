package seed

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/crewcall-hq/crewcall/modules/core/domain/aggregates/user"
	"github.com/crewcall-hq/crewcall/modules/core/domain/entities/tenant"
	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/configuration"
)

// DefaultTenantID is the fixed id single-tenant deployments run under.
var DefaultTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// CreateDefaultTenant makes sure the default tenant row exists. Idempotent:
// reruns on an initialized database are no-ops.
func CreateDefaultTenant(ctx context.Context, app application.Application) error {
	logger := configuration.Use().Logger()
	tenants := persistence.NewTenantRepository()

	found, err := tenants.Exists(ctx, DefaultTenantID)
	if err != nil {
		return errors.Wrap(err, "failed to look up default tenant")
	}
	if found {
		return nil
	}

	logger.Info("creating default tenant")
	_, err = tenants.Create(ctx, tenant.New("Default", tenant.WithID(DefaultTenantID)))
	return err
}

// UserSeedFunc ensures a user with the given email exists in the context
// tenant.
func UserSeedFunc(email, firstName, lastName string) application.SeedFunc {
	return func(ctx context.Context, app application.Application) error {
		logger := configuration.Use().Logger()
		tenantID, err := composables.UseTenantID(ctx)
		if err != nil {
			return err
		}

		users := persistence.NewUserRepository()
		if _, err := users.GetByEmail(ctx, email); err == nil {
			return nil
		} else if !errors.Is(err, user.ErrNotFound) {
			return err
		}

		logger.Infof("creating user %s", email)
		_, err = users.Create(ctx, user.New(tenantID, email, firstName, lastName))
		return err
	}
}
