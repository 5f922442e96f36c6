package modules

import (
	"github.com/crewcall-hq/crewcall/modules/audit"
	"github.com/crewcall-hq/crewcall/modules/core"
	"github.com/crewcall-hq/crewcall/modules/inventory"
	"github.com/crewcall-hq/crewcall/modules/scheduling"
	"github.com/crewcall-hq/crewcall/pkg/application"
)

// BuiltInModules lists the modules in registration order. Order matters:
// scheduling must register before inventory, which borrows its access gate,
// and audit subscribes to events the other modules publish.
var BuiltInModules = []application.Module{
	core.NewModule(),
	scheduling.NewModule(),
	inventory.NewModule(),
	audit.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
