// internal/services/catalog_service_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/store"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// sequentialIDs returns a generator producing prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// failingStore reads through to the wrapped store and fails every write.
type failingStore struct {
	store.Store
}

func (failingStore) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}

// gatedStore holds the first write until release is closed.
type gatedStore struct {
	store.Store
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newGatedStore(inner store.Store) *gatedStore {
	return &gatedStore{Store: inner, started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) Write(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.started)
		<-g.release
	}
	return g.Store.Write(ctx, key, value)
}

type CatalogServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *store.MemoryStore
	clock   time.Time
	service *CatalogService
}

func (s *CatalogServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewMemoryStore()
	s.clock = baseTime
	s.service = NewCatalogService(s.store,
		WithClock(func() time.Time { return s.clock }),
		WithIDGenerator(sequentialIDs("id")),
	)
}

func (s *CatalogServiceTestSuite) create(name, category string, price float64) *models.Product {
	s.clock = s.clock.Add(time.Minute)
	product, err := s.service.Upsert(s.ctx, &models.ProductInput{
		Name:     strPtr(name),
		Category: strPtr(category),
		Price:    &price,
		Stock:    intPtr(20),
	})
	s.Require().NoError(err)
	return product
}

func (s *CatalogServiceTestSuite) storedProducts() []models.Product {
	raw, err := s.store.Read(s.ctx, ProductsKey)
	s.Require().NoError(err)
	var products []models.Product
	s.Require().NoError(json.Unmarshal(raw, &products))
	return products
}

func (s *CatalogServiceTestSuite) TestCreateAssignsIdentityAndDefaults() {
	product := s.create("Basic Tee", "Apparel", 199000)

	s.Equal("id-1", product.ID)
	s.Equal(baseTime.Add(time.Minute), product.CreatedAt)
	s.Zero(product.Views)
	s.Zero(product.Sales)
	s.True(product.IsActive)
	s.NotNil(product.Tags)
	s.NotNil(product.Specifications)
}

func (s *CatalogServiceTestSuite) TestCreateInsertsAtFront() {
	s.create("First", "Home", 1)
	s.create("Second", "Home", 2)

	stored := s.storedProducts()
	s.Require().Len(stored, 2)
	s.Equal("Second", stored[0].Name)
	s.Equal("First", stored[1].Name)
}

func (s *CatalogServiceTestSuite) TestCreateRequiresName() {
	_, err := s.service.Upsert(s.ctx, &models.ProductInput{Price: new(float64)})
	s.Error(err)

	_, err = s.service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("   ")})
	s.Error(err)
}

func (s *CatalogServiceTestSuite) TestUpsertRejectsInvalidFields() {
	negative := -1.0
	_, err := s.service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("Mug"), Price: &negative})
	s.Error(err)

	_, err = s.service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("Mug"), Stock: intPtr(-3)})
	s.Error(err)

	tooHigh := 5.5
	_, err = s.service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("Mug"), Rating: &tooHigh})
	s.Error(err)
}

func (s *CatalogServiceTestSuite) TestUpdateMergesProvidedFields() {
	created := s.create("Ceramic Mug", "Home", 99000)
	_, err := s.service.FetchAndRecordView(s.ctx, created.ID)
	s.Require().NoError(err)

	s.clock = s.clock.Add(time.Hour)
	updated, err := s.service.Upsert(s.ctx, &models.ProductInput{
		ID:    created.ID,
		Price: func() *float64 { v := 89000.0; return &v }(),
		Tags:  []string{"kitchen"},
	})
	s.Require().NoError(err)

	s.Equal(created.ID, updated.ID)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.Equal("Ceramic Mug", updated.Name)
	s.Equal("Home", updated.Category)
	s.Equal(89000.0, updated.Price)
	s.Equal([]string{"kitchen"}, updated.Tags)
	s.EqualValues(1, updated.Views)
}

func (s *CatalogServiceTestSuite) TestUpsertThenFetchReflectsFields() {
	created := s.create("Canvas Tote", "Bags", 259000)

	_, err := s.service.Upsert(s.ctx, &models.ProductInput{
		ID:          created.ID,
		Description: strPtr("Durable everyday tote"),
		Stock:       intPtr(7),
	})
	s.Require().NoError(err)

	fetched, err := s.service.FetchAndRecordView(s.ctx, created.ID)
	s.Require().NoError(err)

	s.Equal(created.ID, fetched.ID)
	s.Equal(created.CreatedAt, fetched.CreatedAt)
	s.Equal("Canvas Tote", fetched.Name)
	s.Equal("Durable everyday tote", fetched.Description)
	s.Equal(7, fetched.Stock)
	s.EqualValues(1, fetched.Views)
}

func (s *CatalogServiceTestSuite) TestUpdateUnknownIDLeavesCollectionUnchanged() {
	s.create("Lamp", "Home", 10)
	before := s.storedProducts()

	_, err := s.service.Upsert(s.ctx, &models.ProductInput{ID: "missing", Name: strPtr("Ghost")})
	s.ErrorIs(err, ErrProductNotFound)
	s.Equal(before, s.storedProducts())
}

func (s *CatalogServiceTestSuite) TestFetchRecordsViewsMonotonically() {
	created := s.create("Headphones", "Electronics", 1299000)

	var last int64
	for i := 1; i <= 5; i++ {
		product, err := s.service.FetchAndRecordView(s.ctx, created.ID)
		s.Require().NoError(err)
		s.EqualValues(i, product.Views)
		s.Greater(product.Views, last)
		last = product.Views
	}

	s.EqualValues(5, s.storedProducts()[0].Views)
}

func (s *CatalogServiceTestSuite) TestPeekDoesNotRecordView() {
	created := s.create("Wallet", "Accessories", 399000)

	peeked, err := s.service.Peek(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Zero(peeked.Views)
	s.Zero(s.storedProducts()[0].Views)
}

func (s *CatalogServiceTestSuite) TestFetchUnknown() {
	_, err := s.service.FetchAndRecordView(s.ctx, "nope")
	s.ErrorIs(err, ErrProductNotFound)

	_, err = s.service.Peek(s.ctx, "nope")
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CatalogServiceTestSuite) TestRemove() {
	keep := s.create("Keep", "Home", 1)
	drop := s.create("Drop", "Home", 2)

	s.Require().NoError(s.service.Remove(s.ctx, drop.ID))

	stored := s.storedProducts()
	s.Require().Len(stored, 1)
	s.Equal(keep.ID, stored[0].ID)
}

func (s *CatalogServiceTestSuite) TestRemoveUnknownIsNoop() {
	s.create("Keep", "Home", 1)
	before := s.storedProducts()

	s.NoError(s.service.Remove(s.ctx, "does-not-exist"))
	s.Equal(before, s.storedProducts())
}

func (s *CatalogServiceTestSuite) TestListCategoriesFirstSeenOrder() {
	s.create("Mug", "Home", 1)
	s.create("Tee", "Apparel", 1)
	s.create("Lamp", "Home", 1)
	s.create("Tote", "Bags", 1)

	categories, err := s.service.ListCategories(s.ctx)
	s.Require().NoError(err)
	// collection order is newest first
	s.Equal([]string{CategoryAll, "Bags", "Home", "Apparel"}, categories)
}

func (s *CatalogServiceTestSuite) TestListCategoriesEmpty() {
	categories, err := s.service.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{CategoryAll}, categories)
}

func (s *CatalogServiceTestSuite) TestAttachReviewRecomputesRating() {
	product := s.create("Tee", "Apparel", 1)

	for _, tc := range []struct {
		rating   int
		expected float64
	}{
		{4, 4.0},
		{5, 4.5},
	} {
		_, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
			ProductID: product.ID, UserName: "An", Rating: tc.rating, Comment: "ok",
		})
		s.Require().NoError(err)

		peeked, err := s.service.Peek(s.ctx, product.ID)
		s.Require().NoError(err)
		s.Equal(tc.expected, peeked.Rating)
	}
}

func (s *CatalogServiceTestSuite) TestAttachReviewMeanOfThree() {
	product := s.create("Mug", "Home", 1)

	for _, rating := range []int{3, 4, 5} {
		_, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
			ProductID: product.ID, UserName: "Binh", Rating: rating, Comment: "fine",
		})
		s.Require().NoError(err)
	}

	peeked, err := s.service.Peek(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4.0, peeked.Rating)
}

func (s *CatalogServiceTestSuite) TestAttachReviewRoundsHalfAwayFromZero() {
	product := s.create("Tote", "Bags", 1)

	// 5+5+4+4+4+4+4+4+4+4+4+4+5+5+5+5+4+4+4+5 = 87 over 20 reviews = 4.35
	ratings := []int{5, 5, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 5, 5, 5, 5, 4, 4, 4, 5}
	for _, rating := range ratings {
		_, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
			ProductID: product.ID, UserName: "Chi", Rating: rating, Comment: "good",
		})
		s.Require().NoError(err)
	}

	peeked, err := s.service.Peek(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal(4.4, peeked.Rating)
}

func (s *CatalogServiceTestSuite) TestAttachReviewFields() {
	product := s.create("Mug", "Home", 1)
	s.clock = s.clock.Add(time.Hour)

	review, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
		ProductID: product.ID, UserName: "Dung", Rating: 2, Comment: "chipped",
	})
	s.Require().NoError(err)

	s.NotEmpty(review.ID)
	s.Equal(s.clock, review.CreatedAt)
	s.Zero(review.Helpful)

	reviews, err := s.service.Reviews(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal([]models.Review{*review}, reviews)
}

func (s *CatalogServiceTestSuite) TestAttachReviewValidation() {
	product := s.create("Mug", "Home", 1)

	invalid := []*models.ReviewInput{
		{ProductID: product.ID, UserName: "", Rating: 3, Comment: "x"},
		{ProductID: product.ID, UserName: "Em", Rating: 0, Comment: "x"},
		{ProductID: product.ID, UserName: "Em", Rating: 6, Comment: "x"},
		{ProductID: product.ID, UserName: "Em", Rating: 3, Comment: "  "},
		{ProductID: "", UserName: "Em", Rating: 3, Comment: "x"},
	}
	for _, in := range invalid {
		_, err := s.service.AttachReview(s.ctx, in)
		s.Error(err, "%+v", in)
	}

	reviews, err := s.service.Reviews(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *CatalogServiceTestSuite) TestAttachReviewUnknownProduct() {
	_, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
		ProductID: "ghost", UserName: "Em", Rating: 3, Comment: "x",
	})
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CatalogServiceTestSuite) TestVoteHelpful() {
	product := s.create("Mug", "Home", 1)
	review, err := s.service.AttachReview(s.ctx, &models.ReviewInput{
		ProductID: product.ID, UserName: "Giang", Rating: 4, Comment: "nice",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.VoteHelpful(s.ctx, review.ID))
	s.Require().NoError(s.service.VoteHelpful(s.ctx, review.ID))
	s.NoError(s.service.VoteHelpful(s.ctx, "unknown"))

	reviews, err := s.service.Reviews(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 1)
	s.EqualValues(2, reviews[0].Helpful)
}

func (s *CatalogServiceTestSuite) TestRelatedProducts() {
	subject := s.create("Subject", "Home", 1)
	low := s.create("Low", "Home", 1)
	high := s.create("High", "Home", 1)
	s.create("Other", "Bags", 1)

	for id, rating := range map[string]float64{subject.ID: 5, low.ID: 2, high.ID: 4.5} {
		r := rating
		_, err := s.service.Upsert(s.ctx, &models.ProductInput{ID: id, Rating: &r})
		s.Require().NoError(err)
	}

	related, err := s.service.RelatedProducts(s.ctx, subject.ID, 0)
	s.Require().NoError(err)
	s.Equal([]string{high.ID, low.ID}, ids(related))
	for _, p := range related {
		s.NotEqual(subject.ID, p.ID)
	}

	related, err = s.service.RelatedProducts(s.ctx, subject.ID, 1)
	s.Require().NoError(err)
	s.Equal([]string{high.ID}, ids(related))

	peeked, err := s.service.Peek(s.ctx, subject.ID)
	s.Require().NoError(err)
	s.Zero(peeked.Views)
}

func (s *CatalogServiceTestSuite) TestRelatedProductsDefaultLimitAndTies() {
	subject := s.create("Subject", "Home", 1)
	var siblings []string
	for i := 0; i < 6; i++ {
		siblings = append(siblings, s.create(fmt.Sprintf("Sibling %d", i), "Home", 1).ID)
	}

	related, err := s.service.RelatedProducts(s.ctx, subject.ID, 0)
	s.Require().NoError(err)
	s.Len(related, DefaultRelatedLimit)
	// equal ratings keep collection order, which is newest first
	s.Equal([]string{siblings[5], siblings[4], siblings[3], siblings[2]}, ids(related))
}

func (s *CatalogServiceTestSuite) TestRelatedProductsUnknown() {
	related, err := s.service.RelatedProducts(s.ctx, "ghost", 4)
	s.Require().NoError(err)
	s.Empty(related)
}

func (s *CatalogServiceTestSuite) TestCompare() {
	a := s.create("A", "Home", 1)
	b := s.create("B", "Home", 2)

	products, err := s.service.Compare(s.ctx, []string{b.ID, "ghost", a.ID})
	s.Require().NoError(err)
	s.Equal([]string{b.ID, a.ID}, ids(products))
	s.Zero(products[0].Views)
}

func (s *CatalogServiceTestSuite) TestListUsesDefaultPageSize() {
	service := NewCatalogService(s.store, WithDefaultPageSize(2))
	for i := 0; i < 5; i++ {
		s.create(fmt.Sprintf("P%d", i), "Home", float64(i))
	}

	page, err := service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
	s.Equal(3, page.TotalPages)
	s.Equal(2, service.DefaultPageSize())
}

func (s *CatalogServiceTestSuite) TestCorruptCollectionReadsAsEmpty() {
	s.Require().NoError(s.store.Write(s.ctx, ProductsKey, []byte("{not json")))
	s.Require().NoError(s.store.Write(s.ctx, ReviewsKey, []byte("[[[")))

	page, err := s.service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Empty(page.Items)
	s.Zero(page.Total)

	reviews, err := s.service.Reviews(s.ctx, "any")
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *CatalogServiceTestSuite) TestCorruptCollectionIsNotReseeded() {
	service := NewCatalogService(s.store, WithSeed(DefaultSeedProducts(baseTime)))
	s.Require().NoError(s.store.Write(s.ctx, ProductsKey, []byte("garbage")))

	page, err := service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Zero(page.Total)
}

func (s *CatalogServiceTestSuite) TestSeedOnFirstRead() {
	service := NewCatalogService(s.store, WithSeed(DefaultSeedProducts(baseTime)))

	page, err := service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Equal(5, page.Total)
	s.Equal("Basic Tee", page.Items[0].Name)
	s.Len(s.storedProducts(), 5)

	categories, err := service.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{CategoryAll, "Apparel", "Bags", "Home", "Electronics", "Accessories"}, categories)
}

func (s *CatalogServiceTestSuite) TestSeedAfterRemovingEverythingDoesNotReseed() {
	service := NewCatalogService(s.store, WithSeed(DefaultSeedProducts(baseTime)))
	page, err := service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)

	for _, p := range page.Items {
		s.Require().NoError(service.Remove(s.ctx, p.ID))
	}

	page, err = service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Zero(page.Total)
}

func (s *CatalogServiceTestSuite) TestSeedingOnReadDoesNotLoseConcurrentCreate() {
	gated := newGatedStore(s.store)
	service := NewCatalogService(gated, WithSeed(DefaultSeedProducts(baseTime)))

	listDone := make(chan error, 1)
	go func() {
		_, err := service.List(s.ctx, ProductQuery{})
		listDone <- err
	}()
	<-gated.started

	type upsertResult struct {
		product *models.Product
		err     error
	}
	upsertDone := make(chan upsertResult, 1)
	go func() {
		product, err := service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("New")})
		upsertDone <- upsertResult{product, err}
	}()

	// Give the create a chance to run while the seed write is held.
	time.Sleep(20 * time.Millisecond)
	close(gated.release)

	s.Require().NoError(<-listDone)
	created := <-upsertDone
	s.Require().NoError(created.err)

	_, err := service.Peek(s.ctx, created.product.ID)
	s.NoError(err)

	page, err := service.List(s.ctx, ProductQuery{})
	s.Require().NoError(err)
	s.Equal(6, page.Total)
	s.Equal("New", page.Items[0].Name)
}

func (s *CatalogServiceTestSuite) TestSeedCommand() {
	service := NewCatalogService(s.store, WithSeed(DefaultSeedProducts(baseTime)))
	s.create("Existing", "Home", 1)

	written, err := service.Seed(s.ctx, false)
	s.Require().NoError(err)
	s.Zero(written)
	s.Len(s.storedProducts(), 1)

	written, err = service.Seed(s.ctx, true)
	s.Require().NoError(err)
	s.Equal(5, written)
	s.Len(s.storedProducts(), 5)
}

func (s *CatalogServiceTestSuite) TestWriteFailurePropagates() {
	product := s.create("Mug", "Home", 1)
	service := NewCatalogService(failingStore{Store: s.store})

	_, err := service.FetchAndRecordView(s.ctx, product.ID)
	s.Error(err)

	_, err = service.Upsert(s.ctx, &models.ProductInput{Name: strPtr("New")})
	s.Error(err)

	s.Len(s.storedProducts(), 1)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func TestAverageRating(t *testing.T) {
	reviews := []models.Review{
		{ProductID: "a", Rating: 1},
		{ProductID: "a", Rating: 2},
		{ProductID: "b", Rating: 5},
	}

	assert.Equal(t, 1.5, averageRating(reviews, "a"))
	assert.Equal(t, 5.0, averageRating(reviews, "b"))
	assert.Equal(t, 0.0, averageRating(reviews, "c"))
}

func TestDefaultSeedProducts(t *testing.T) {
	products := DefaultSeedProducts(baseTime)
	require.Len(t, products, 5)

	seen := map[string]bool{}
	for i, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, p.IsActive)
		if i > 0 {
			assert.True(t, p.CreatedAt.Before(products[i-1].CreatedAt))
		}
	}
}
