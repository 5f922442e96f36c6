package core

import (
	"embed"

	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/core/presentation/controllers"
	"github.com/crewcall-hq/crewcall/modules/core/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
)

//go:embed infrastructure/persistence/schema/core-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewUserService(persistence.NewUserRepository(), app.EventPublisher()),
		services.NewOrganizationService(persistence.NewOrganizationRepository(), app.EventPublisher()),
	)
	app.RegisterControllers(
		controllers.NewUserController(app),
		controllers.NewOrganizationController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
