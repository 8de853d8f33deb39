// internal/services/collection.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/metrics"
	"github.com/javajoker/merchio-backend/internal/store"
)

// Namespace keys of the persisted collections.
const (
	ProductsKey  = "merchio_products"
	ReviewsKey   = "merchio_reviews"
	FavoritesKey = "merchio_favorites"
)

// collection reads and writes one whole JSON array under a single store key.
type collection[T any] struct {
	store store.Store
	key   string
}

func newCollection[T any](s store.Store, key string) collection[T] {
	return collection[T]{store: s, key: key}
}

// load returns the stored items and whether the key existed. A payload that
// fails to decode is logged and treated as an empty, existing collection.
func (c collection[T]) load(ctx context.Context) ([]T, bool, error) {
	raw, err := c.store.Read(ctx, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		metrics.CorruptReads.WithLabelValues(c.key).Inc()
		logrus.WithError(err).WithField("key", c.key).Warn("Corrupted collection treated as empty")
		return []T{}, true, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Write(ctx, c.key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}
