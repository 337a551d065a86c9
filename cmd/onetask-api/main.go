package main

import (
	"net/http"

	"go.uber.org/fx"

	"onetask-api/internal/config"
	"onetask-api/internal/docstore"
	"onetask-api/internal/handlers"
	"onetask-api/internal/logger"
	"onetask-api/internal/middle"
	"onetask-api/internal/repository"
	"onetask-api/internal/server"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			server.NewServer,
		),
		fx.Invoke(
			// force server construction so the lifecycle hooks register
			func(*http.Server) {},
		),
		docstore.Module,
		repository.Module,
		handlers.Module,
		middle.Module,
	)
	app.Run()
}
