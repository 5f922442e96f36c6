package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/crewcall-hq/crewcall/modules/core/infrastructure/persistence"
	"github.com/crewcall-hq/crewcall/pkg/application"
	"github.com/crewcall-hq/crewcall/pkg/configuration"
	"github.com/crewcall-hq/crewcall/pkg/constants"
	"github.com/crewcall-hq/crewcall/pkg/httpapi"
	"github.com/crewcall-hq/crewcall/pkg/middleware"
	"github.com/crewcall-hq/crewcall/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.RequestParams(),
		middleware.WithIdentity(persistence.NewUserRepository()),
	)

	return server.NewHTTPServer(
		app,
		notFoundHandler(),
		methodNotAllowedHandler(),
	), nil
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such endpoint", nil)
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
}
