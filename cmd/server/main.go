package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NabsK/hr-admin-system/internal/config"
	"github.com/NabsK/hr-admin-system/internal/db"
	"github.com/NabsK/hr-admin-system/internal/middleware"
	"github.com/NabsK/hr-admin-system/internal/routes"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Logger = logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("db error")
	}

	if cfg.SeedOnStart {
		if err := db.Seed(database, cfg.DefaultPassword); err != nil {
			logger.Fatal().Err(err).Msg("seed error")
		}
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())

	routes.Register(router, database, cfg)

	logger.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
