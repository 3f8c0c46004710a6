package main

import (
	"go.uber.org/zap"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/invite"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/limiter"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/router"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/session"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/database"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: "faith-platform",
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting platform service...", cfg.LogConfig()...)

	// Initialize database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize invitation token signing
	invite.Initialize(&cfg.Invite)

	// Rate limiter counter store with periodic eviction of expired keys
	store := limiter.NewMemoryStore(nil)
	store.StartSweeper(cfg.RateLimit.SweepInterval, prometheus.UpdateRateLimitKeys)
	defer store.Stop()

	sessions := session.NewService(database.GetDB(), &cfg.Session, nil)

	e := router.New(router.Options{
		DB:       database.GetDB(),
		Cfg:      cfg,
		Sessions: sessions,
		Store:    store,
	})

	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
