package audit

import (
	"embed"

	"github.com/crewcall-hq/crewcall/modules/audit/handlers"
	"github.com/crewcall-hq/crewcall/modules/audit/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/audit/presentation/controllers"
	"github.com/crewcall-hq/crewcall/modules/audit/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
)

//go:embed infrastructure/persistence/schema/audit-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewAuditService(persistence.NewAuditLogRepository()),
	)
	app.RegisterControllers(
		controllers.NewAuditController(app),
	)
	handlers.RegisterDomainEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "audit"
}
