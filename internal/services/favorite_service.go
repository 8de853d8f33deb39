// internal/services/favorite_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/merchio-backend/internal/metrics"
	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/store"
)

var ErrUserRequired = errors.New("user id is required")

// FavoriteService keeps per-user favorites. A user holds at most one favorite
// per product.
type FavoriteService struct {
	mu        sync.Mutex
	favorites collection[models.Favorite]
	catalog   *CatalogService
	now       func() time.Time
	newID     func() string
}

func NewFavoriteService(st store.Store, catalog *CatalogService) *FavoriteService {
	return &FavoriteService{
		favorites: newCollection[models.Favorite](st, FavoritesKey),
		catalog:   catalog,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// AddFavorite marks a product as a favorite of userID. Adding an existing
// favorite returns it unchanged.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, productID string) (*models.Favorite, error) {
	metrics.ObserveOperation("favorite_add")

	if userID == "" {
		return nil, ErrUserRequired
	}
	if _, err := s.catalog.Peek(ctx, productID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return nil, err
	}
	if idx := indexOfFavorite(favorites, userID, productID); idx >= 0 {
		existing := favorites[idx]
		return &existing, nil
	}

	favorite := models.Favorite{
		ID:        s.newID(),
		ProductID: productID,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	favorites = append(favorites, favorite)
	if err := s.favorites.save(ctx, favorites); err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}
	return &favorite, nil
}

// RemoveFavorite drops the favorite if present.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, productID string) error {
	metrics.ObserveOperation("favorite_remove")

	if userID == "" {
		return ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return err
	}
	idx := indexOfFavorite(favorites, userID, productID)
	if idx < 0 {
		return nil
	}

	favorites = append(favorites[:idx], favorites[idx+1:]...)
	if err := s.favorites.save(ctx, favorites); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite state and reports whether the product is
// a favorite afterwards. The check and the write happen under one lock.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, userID, productID string) (bool, error) {
	metrics.ObserveOperation("favorite_toggle")

	if userID == "" {
		return false, ErrUserRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return false, err
	}

	if idx := indexOfFavorite(favorites, userID, productID); idx >= 0 {
		favorites = append(favorites[:idx], favorites[idx+1:]...)
		if err := s.favorites.save(ctx, favorites); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	if _, err := s.catalog.Peek(ctx, productID); err != nil {
		return false, err
	}
	favorites = append(favorites, models.Favorite{
		ID:        s.newID(),
		ProductID: productID,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	})
	if err := s.favorites.save(ctx, favorites); err != nil {
		return false, fmt.Errorf("failed to save favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns the favorites of userID, oldest first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Favorite{}
	for _, f := range favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, ErrUserRequired
	}

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return false, err
	}
	return indexOfFavorite(favorites, userID, productID) >= 0, nil
}

// FavoriteSet returns the product ids favored by userID, for annotating
// listings. An empty user has no favorites.
func (s *FavoriteService) FavoriteSet(ctx context.Context, userID string) (map[string]bool, error) {
	set := make(map[string]bool)
	if userID == "" {
		return set, nil
	}

	favorites, err := s.favorites.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range favorites {
		if f.UserID == userID {
			set[f.ProductID] = true
		}
	}
	return set, nil
}

// FavoriteProducts resolves the favorites of userID to products, skipping
// favorites whose product has since been removed. No views are recorded.
func (s *FavoriteService) FavoriteProducts(ctx context.Context, userID string) ([]models.Product, error) {
	favorites, err := s.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.ProductID)
	}
	return s.catalog.Compare(ctx, ids)
}

func indexOfFavorite(favorites []models.Favorite, userID, productID string) int {
	for i := range favorites {
		if favorites[i].UserID == userID && favorites[i].ProductID == productID {
			return i
		}
	}
	return -1
}
