package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewcall-hq/crewcall/internal/server"
	"github.com/crewcall-hq/crewcall/modules"
	"github.com/crewcall-hq/crewcall/modules/core/seed"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/composables"
	"github.com/crewcall-hq/crewcall/pkg/configuration"
	"github.com/crewcall-hq/crewcall/pkg/eventbus"
	"github.com/crewcall-hq/crewcall/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if err := app.Migrations().Run(ctx); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	seeder := application.NewSeeder()
	seeder.Register(seed.CreateDefaultTenant)
	seedCtx := composables.WithPool(context.Background(), pool)
	seedCtx = composables.WithTenantID(seedCtx, seed.DefaultTenantID)
	if err := composables.InTx(seedCtx, func(txCtx context.Context) error {
		return seeder.Seed(txCtx, app)
	}); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
