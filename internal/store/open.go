// internal/store/open.go
package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/config"
	"github.com/javajoker/merchio-backend/internal/database"
)

// Open builds the backend named by cfg.Store.Driver and applies the key prefix.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Store.Driver {
	case "memory":
		s = NewMemoryStore()
	case "file":
		s, err = NewFileStore(cfg.Store.FileRoot)
	case "gorm":
		s, err = openGorm(cfg.Database)
	case "s3":
		s, err = NewS3StoreFromConfig(cfg.AWS)
	case "redis":
		s, err = ConnectRedis(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"driver": cfg.Store.Driver,
		"prefix": cfg.Store.KeyPrefix,
	}).Info("Collection store opened")

	return WithPrefix(s, cfg.Store.KeyPrefix), nil
}

func openGorm(cfg config.DatabaseConfig) (*GormStore, error) {
	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return NewGormStore(db), nil
}
