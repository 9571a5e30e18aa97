package main

import (
	"context"

	"eventplanner-backend/internal/config"
	"eventplanner-backend/internal/interfaces/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	config.SetupLogger(cfg)

	app, deps, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}
	defer deps.Store.Close(context.Background())
	if deps.Rdb != nil {
		defer deps.Rdb.Close()
		log.Info().Msg("Redis connected")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("store", deps.Store.Backend()).
		Msgf("Server running at http://localhost:%s", cfg.Port)
	log.Info().Msgf("Health check: http://localhost:%s/health/json", cfg.Port)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
