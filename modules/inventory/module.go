package inventory

import (
	"embed"

	corepersistence "github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/inventory/domain/aggregates/kit"
	"github.com/crewcall-hq/crewcall/modules/inventory/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/inventory/presentation/controllers"
	"github.com/crewcall-hq/crewcall/modules/inventory/services"
	schedulingpersistence "github.com/crewcall-hq/crewcall/modules/scheduling/infrastructure/persistence"
	schedulingservices "github.com/crewcall-hq/crewcall/modules/scheduling/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/inventory-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register wires the inventory services. It expects the scheduling module to
// be registered first: kit access control reuses its gate.
func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	gate := app.Service(schedulingservices.AccessGate{}).(*schedulingservices.AccessGate)
	policy := kit.PolicyFromString(configuration.Use().Scheduling.ConflictBoundary)

	app.RegisterServices(
		services.NewKitService(
			persistence.NewKitRepository(),
			schedulingpersistence.NewGigRepository(),
			corepersistence.NewOrganizationRepository(),
			gate,
			policy,
			app.EventPublisher(),
		),
		services.NewAssetService(persistence.NewAssetRepository()),
	)
	app.RegisterControllers(
		controllers.NewKitController(app),
		controllers.NewAssetController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "inventory"
}
