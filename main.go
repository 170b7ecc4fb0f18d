package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/salone-startups/api-go/config"
	"github.com/salone-startups/api-go/directory"
	"github.com/salone-startups/api-go/docstore"
	"github.com/salone-startups/api-go/events"
	"github.com/salone-startups/api-go/listings"
	"github.com/salone-startups/api-go/middleware"
	"github.com/salone-startups/api-go/objectstore"
	"github.com/salone-startups/api-go/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Setup logging
	setupLogging(cfg)
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.InitDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := docstore.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	catalog, err := directory.LoadCatalog(cfg.CategoriesFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CategoriesFile).Msg("failed to load categories")
	}

	var objects objectstore.Store
	if r2, err := objectstore.NewR2(cfg.R2); err != nil {
		log.Warn().Err(err).Msg("image uploads disabled")
	} else {
		objects = r2
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.NATSURL != "" {
		nc, err := events.NewNATSPublisher(events.DefaultNATSConfig(cfg.NATSURL))
		if err != nil {
			log.Warn().Err(err).Str("nats_url", cfg.NATSURL).Msg("change events disabled")
		} else {
			publisher = nc
		}
	}
	defer publisher.Close()

	clock := clockwork.NewRealClock()
	store := docstore.NewGormStore(db, clock)
	app := listings.NewApp(store, listings.Options{
		Catalog:       catalog,
		Clock:         clock,
		Publisher:     publisher,
		FeaturedLimit: cfg.FeaturedLimit,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:           db,
		App:          app,
		Objects:      objects,
		Clock:        clock,
		VisibleCount: cfg.VisibleCount,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("db_driver", cfg.Database.Driver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("shutdown complete")
}

func setupLogging(cfg config.Config) {
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
