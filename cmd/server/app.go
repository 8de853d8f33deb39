// cmd/server/app.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/config"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/store"
)

// app holds what every subcommand needs: configuration, the opened store and
// the services built on it.
type app struct {
	cfg       *config.Config
	store     store.Store
	catalog   *services.CatalogService
	favorites *services.FavoriteService
}

// bootstrap loads configuration and opens the store. seedOnRead lets the
// catalog write the starter products the first time it finds none; commands
// that only read pass false.
func bootstrap(ctx context.Context, seedOnRead bool) (*app, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg)

	// Open collection store
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	catalog := services.NewCatalogService(st, catalogOptions(cfg, seedOnRead)...)

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"store":       cfg.Store.Driver,
		"key_prefix":  cfg.Store.KeyPrefix,
		"seed":        cfg.Catalog.Seed && seedOnRead,
	}).Info("Catalog initialized")

	return &app{
		cfg:       cfg,
		store:     st,
		catalog:   catalog,
		favorites: services.NewFavoriteService(st, catalog),
	}, nil
}

func catalogOptions(cfg *config.Config, seedOnRead bool) []services.CatalogOption {
	opts := []services.CatalogOption{
		services.WithDefaultPageSize(cfg.Catalog.DefaultPageSize),
	}
	if cfg.Catalog.Seed && seedOnRead {
		opts = append(opts, services.WithSeed(services.DefaultSeedProducts(time.Now())))
	}
	return opts
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close store")
	}
}

func setupLogging(cfg *config.Config) {
	logrus.SetOutput(os.Stdout)

	if cfg.IsProduction() || strings.EqualFold(cfg.Log.Format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.WithField("level", cfg.Log.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
