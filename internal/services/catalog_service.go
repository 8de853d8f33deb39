// internal/services/catalog_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/metrics"
	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/store"
	"github.com/javajoker/merchio-backend/internal/utils"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService is the catalog query engine. Every operation reads whole
// collections from the store, computes, and writes whole collections back.
// Mutations are serialized within the process; concurrent processes sharing
// a store resolve by last writer wins.
type CatalogService struct {
	mu              sync.Mutex
	products        collection[models.Product]
	reviews         collection[models.Review]
	seed            []models.Product
	defaultPageSize int
	now             func() time.Time
	newID           func() string
}

type CatalogOption func(*CatalogService)

// WithSeed installs the products written the first time the products key is
// found missing.
func WithSeed(products []models.Product) CatalogOption {
	return func(s *CatalogService) {
		s.seed = products
	}
}

func WithDefaultPageSize(size int) CatalogOption {
	return func(s *CatalogService) {
		if size > 0 {
			s.defaultPageSize = size
		}
	}
}

func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) CatalogOption {
	return func(s *CatalogService) {
		s.newID = newID
	}
}

func NewCatalogService(st store.Store, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		products:        newCollection[models.Product](st, ProductsKey),
		reviews:         newCollection[models.Review](st, ReviewsKey),
		defaultPageSize: DefaultPageSize,
		now:             time.Now,
		newID:           uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) DefaultPageSize() int {
	return s.defaultPageSize
}

// List returns one page of the products matching query.
func (s *CatalogService) List(ctx context.Context, query ProductQuery) (*ProductPage, error) {
	metrics.ObserveOperation("list")

	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}

	page := ListProducts(products, query.Normalize(s.defaultPageSize))
	return &page, nil
}

// Peek returns a product without recording a view.
func (s *CatalogService) Peek(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfProduct(products, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}
	product := products[idx].Clone()
	return &product, nil
}

// FetchAndRecordView is the user-facing detail read: each successful call
// increments the product's view count by one and persists it before returning.
func (s *CatalogService) FetchAndRecordView(ctx context.Context, id string) (*models.Product, error) {
	metrics.ObserveOperation("fetch")

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfProduct(products, id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	products[idx].Views++
	if err := s.products.save(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	metrics.ProductViews.Inc()

	product := products[idx].Clone()
	return &product, nil
}

// Upsert updates the product named by in.ID, or creates a new one at the
// front of the collection when in.ID is empty.
func (s *CatalogService) Upsert(ctx context.Context, in *models.ProductInput) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if in.ID != "" {
		metrics.ObserveOperation("update")

		idx := indexOfProduct(products, in.ID)
		if idx < 0 {
			return nil, ErrProductNotFound
		}
		products[idx].Apply(in)
		product = products[idx]
	} else {
		metrics.ObserveOperation("create")

		product = models.Product{
			ID:             s.newID(),
			CreatedAt:      s.now().UTC(),
			Tags:           []string{},
			Specifications: map[string]string{},
			IsActive:       true,
		}
		product.Apply(in)
		products = append([]models.Product{product}, products...)
	}

	if err := s.products.save(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	out := product.Clone()
	return &out, nil
}

// Remove hard-deletes a product. Unknown ids are a no-op.
func (s *CatalogService) Remove(ctx context.Context, id string) error {
	metrics.ObserveOperation("remove")

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return err
	}

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}

	if err := s.products.save(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// ListCategories returns "all" followed by the distinct categories in the
// order they first appear in the collection.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}
	return distinctCategories(products), nil
}

// AttachReview stores a review and recomputes the owning product's rating as
// the mean of all of its review ratings.
func (s *CatalogService) AttachReview(ctx context.Context, in *models.ReviewInput) (*models.Review, error) {
	metrics.ObserveOperation("attach_review")

	// Validate request
	if err := utils.ValidateStruct(in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOfProduct(products, in.ProductID)
	if idx < 0 {
		return nil, ErrProductNotFound
	}

	reviews, err := s.reviews.all(ctx)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:        s.newID(),
		ProductID: in.ProductID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.now().UTC(),
		Helpful:   0,
	}
	reviews = append(reviews, review)
	if err := s.reviews.save(ctx, reviews); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	products[idx].Rating = averageRating(reviews, in.ProductID)
	if err := s.products.save(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to update product rating: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"product_id": in.ProductID,
		"review_id":  review.ID,
		"rating":     products[idx].Rating,
	}).Debug("Review attached")

	return &review, nil
}

// VoteHelpful increments a review's helpful count. Unknown ids are a no-op.
func (s *CatalogService) VoteHelpful(ctx context.Context, reviewID string) error {
	metrics.ObserveOperation("vote_helpful")

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := s.reviews.all(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID == reviewID {
			reviews[i].Helpful++
			if err := s.reviews.save(ctx, reviews); err != nil {
				return fmt.Errorf("failed to record helpful vote: %w", err)
			}
			return nil
		}
	}
	return nil
}

// Reviews returns a product's reviews in submission order.
func (s *CatalogService) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.all(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Review{}
	for _, r := range reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

// RelatedProducts returns up to limit other products of the same category,
// best rated first. It does not record a view of the subject.
func (s *CatalogService) RelatedProducts(ctx context.Context, id string, limit int) ([]models.Product, error) {
	metrics.ObserveOperation("related")

	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOfProduct(products, id)
	if idx < 0 {
		return []models.Product{}, nil
	}
	subject := products[idx]

	related := []models.Product{}
	for _, p := range products {
		if p.ID != subject.ID && p.Category == subject.Category {
			related = append(related, p.Clone())
		}
	}
	sort.SliceStable(related, func(i, j int) bool { return related[i].Rating > related[j].Rating })

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// Compare returns the products named by ids in request order, skipping
// unknown ids. Comparing does not record views.
func (s *CatalogService) Compare(ctx context.Context, ids []string) ([]models.Product, error) {
	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Product{}
	for _, id := range ids {
		if idx := indexOfProduct(products, id); idx >= 0 {
			out = append(out, products[idx].Clone())
		}
	}
	return out, nil
}

// Seed writes the configured seed products. Without force it only writes when
// the collection is missing or empty. Returns the number of products written.
func (s *CatalogService) Seed(ctx context.Context, force bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force {
		existing, err := s.products.all(ctx)
		if err != nil {
			return 0, err
		}
		if len(existing) > 0 {
			return 0, nil
		}
	}

	if err := s.products.save(ctx, s.seed); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(s.seed), nil
}

// readProducts is the read path for callers that do not hold s.mu. Seeding
// the missing collection is a write, so it happens under the lock.
func (s *CatalogService) readProducts(ctx context.Context) ([]models.Product, error) {
	products, existed, err := s.products.load(ctx)
	if err != nil {
		return nil, err
	}
	if existed || len(s.seed) == 0 {
		return products, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProducts(ctx)
}

// loadProducts loads the product collection, seeding it on first use.
// Callers must hold s.mu.
func (s *CatalogService) loadProducts(ctx context.Context) ([]models.Product, error) {
	products, existed, err := s.products.load(ctx)
	if err != nil {
		return nil, err
	}
	if existed || len(s.seed) == 0 {
		return products, nil
	}

	seeded := make([]models.Product, 0, len(s.seed))
	for _, p := range s.seed {
		seeded = append(seeded, p.Clone())
	}
	if err := s.products.save(ctx, seeded); err != nil {
		return nil, fmt.Errorf("failed to seed products: %w", err)
	}
	logrus.WithField("count", len(seeded)).Info("Seeded product collection")
	return seeded, nil
}

func indexOfProduct(products []models.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

func distinctCategories(products []models.Product) []string {
	seen := make(map[string]bool, len(products))
	categories := []string{CategoryAll}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// averageRating is the mean of a product's review ratings rounded to one
// decimal, halves away from zero. Zero when the product has no reviews.
func averageRating(reviews []models.Review, productID string) float64 {
	sum, count := 0, 0
	for _, r := range reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return roundToTenth(float64(sum*10) / float64(count))
}

// roundToTenth takes a value already scaled by ten.
func roundToTenth(scaled float64) float64 {
	return math.Round(scaled) / 10
}
