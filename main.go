package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hmsdev/hms-backend/config"
	"github.com/hmsdev/hms-backend/internal/routes"
	"github.com/hmsdev/hms-backend/pkg/logger"
	"github.com/hmsdev/hms-backend/pkg/metrics"
	"github.com/hmsdev/hms-backend/pkg/storage/mariadb"
)

func main() {
	cfg := config.LoadConfig()
	logger.Setup(cfg.AppEnv)

	db := mariadb.Connect()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	routes.Init(e, db)

	log.Info().Str("port", cfg.Port).Msg("HMS server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
