// internal/services/catalog_query.go
package services

import (
	"strings"

	"github.com/javajoker/merchio-backend/internal/models"
)

const (
	CategoryAll         = "all"
	DefaultPageSize     = 12
	DefaultRelatedLimit = 4
)

// ProductQuery describes one listing request. Zero values mean "no filter"
// and the documented defaults.
type ProductQuery struct {
	Text      string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Stock     models.StockFilter
	SortBy    models.SortKey
	SortOrder models.SortOrder
	Page      int
	PageSize  int
}

type ProductPage struct {
	Items      []models.Product `json:"items"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// Normalize replaces every unrecognized or out-of-range option with its
// default so that listing never fails on bad input.
func (q ProductQuery) Normalize(defaultPageSize int) ProductQuery {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if q.Category == "" {
		q.Category = CategoryAll
	}
	q.Stock = models.ParseStockFilter(string(q.Stock))
	q.SortBy = models.ParseSortKey(string(q.SortBy))
	q.SortOrder = models.ParseSortOrder(string(q.SortOrder))
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultPageSize
	}
	return q
}

func (q ProductQuery) matches(p *models.Product) bool {
	if q.Text != "" && !matchesText(p, strings.ToLower(q.Text)) {
		return false
	}
	if q.Category != CategoryAll && p.Category != q.Category {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && p.Rating < *q.MinRating {
		return false
	}

	switch q.Stock {
	case models.StockFilterInStock:
		return p.Stock > 0
	case models.StockFilterOutOfStock:
		return p.Stock == 0
	case models.StockFilterLowStock:
		return p.Stock > 0 && p.Stock < models.LowStockThreshold
	}
	return true
}

func matchesText(p *models.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// ListProducts filters, stably sorts and paginates a snapshot of the
// collection. The input slice is not modified.
func ListProducts(products []models.Product, query ProductQuery) ProductPage {
	q := query.Normalize(DefaultPageSize)

	// Apply filters
	matched := make([]models.Product, 0, len(products))
	for i := range products {
		if q.matches(&products[i]) {
			matched = append(matched, products[i])
		}
	}

	sortProducts(matched, q.SortBy, q.SortOrder)

	total := len(matched)
	totalPages := total / q.PageSize
	if total%q.PageSize != 0 {
		totalPages++
	}
	page := ProductPage{
		Items:      []models.Product{},
		Total:      total,
		TotalPages: totalPages,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	// Apply pagination; pages past the end are empty, not an error
	if q.Page > totalPages {
		return page
	}
	start := (q.Page - 1) * q.PageSize
	end := total
	if remaining := total - start; remaining > q.PageSize {
		end = start + q.PageSize
	}
	for _, p := range matched[start:end] {
		page.Items = append(page.Items, p.Clone())
	}
	return page
}
