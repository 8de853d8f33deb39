// internal/services/catalog_stats.go
package services

import (
	"context"
	"sort"

	"github.com/javajoker/merchio-backend/internal/metrics"
	"github.com/javajoker/merchio-backend/internal/models"
)

const dashboardListSize = 5

type Stats struct {
	TotalProducts      int     `json:"total_products"`
	TotalCategories    int     `json:"total_categories"`
	TotalReviews       int     `json:"total_reviews"`
	AverageRating      float64 `json:"average_rating"`
	TotalViews         int64   `json:"total_views"`
	TotalSales         int64   `json:"total_sales"`
	LowStockProducts   int     `json:"low_stock_products"`
	OutOfStockProducts int     `json:"out_of_stock_products"`
}

type Dashboard struct {
	Stats              Stats            `json:"stats"`
	TopProducts        []models.Product `json:"top_products"`
	LowStockProducts   []models.Product `json:"low_stock_products"`
	OutOfStockProducts []models.Product `json:"out_of_stock_products"`
	RecentReviews      []models.Review  `json:"recent_reviews"`
}

// ComputeStats aggregates a snapshot of products and reviews. The average
// rating is over all reviews, unrounded, and zero without reviews.
func ComputeStats(products []models.Product, reviews []models.Review) Stats {
	stats := Stats{
		TotalProducts: len(products),
		TotalReviews:  len(reviews),
	}

	categories := make(map[string]struct{})
	for _, p := range products {
		categories[p.Category] = struct{}{}
		stats.TotalViews += p.Views
		stats.TotalSales += p.Sales
		if p.Stock < models.LowStockThreshold {
			stats.LowStockProducts++
		}
		if p.Stock == 0 {
			stats.OutOfStockProducts++
		}
	}
	stats.TotalCategories = len(categories)

	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(reviews))
	}
	return stats
}

func (s *CatalogService) Stats(ctx context.Context) (*Stats, error) {
	metrics.ObserveOperation("stats")

	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.all(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(products, reviews)
	return &stats, nil
}

// Dashboard returns the stats together with the most viewed products, the
// stock alerts and the newest reviews.
func (s *CatalogService) Dashboard(ctx context.Context) (*Dashboard, error) {
	metrics.ObserveOperation("dashboard")

	products, err := s.readProducts(ctx)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.all(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		Stats:              ComputeStats(products, reviews),
		TopProducts:        []models.Product{},
		LowStockProducts:   []models.Product{},
		OutOfStockProducts: []models.Product{},
		RecentReviews:      []models.Review{},
	}

	top := make([]models.Product, len(products))
	copy(top, products)
	sortProducts(top, models.SortByViews, models.SortDesc)
	for i := 0; i < len(top) && i < dashboardListSize; i++ {
		dashboard.TopProducts = append(dashboard.TopProducts, top[i].Clone())
	}

	// Low stock includes sold-out products, matching the stats count.
	for _, p := range products {
		if p.Stock < models.LowStockThreshold {
			dashboard.LowStockProducts = append(dashboard.LowStockProducts, p.Clone())
		}
		if p.Stock == 0 {
			dashboard.OutOfStockProducts = append(dashboard.OutOfStockProducts, p.Clone())
		}
	}

	recent := make([]models.Review, len(reviews))
	copy(recent, reviews)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > dashboardListSize {
		recent = recent[:dashboardListSize]
	}
	dashboard.RecentReviews = append(dashboard.RecentReviews, recent...)

	return dashboard, nil
}
