package scheduling

import (
	"embed"

	corepersistence "github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/scheduling/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/modules/scheduling/presentation/controllers"
	"github.com/crewcall-hq/crewcall/modules/scheduling/services"
	"github.com/crewcall-hq/crewcall/pkg/application"
)

//go:embed infrastructure/persistence/schema/scheduling-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	gigRepo := persistence.NewGigRepository()
	roleRepo := persistence.NewStaffRoleRepository()
	orgRepo := corepersistence.NewOrganizationRepository()
	userRepo := corepersistence.NewUserRepository()
	gate := services.NewAccessGate(gigRepo, orgRepo)

	app.RegisterServices(
		gate,
		services.NewGigService(gigRepo, roleRepo, orgRepo, userRepo, gate, app.EventPublisher()),
		services.NewStaffRoleService(roleRepo),
	)
	app.RegisterControllers(
		controllers.NewGigController(app),
		controllers.NewStaffRoleController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "scheduling"
}
