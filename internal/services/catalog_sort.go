// internal/services/catalog_sort.go
package services

import (
	"sort"
	"strings"

	"github.com/javajoker/merchio-backend/internal/models"
)

type productLess func(a, b *models.Product) bool

// One strict less-than per sort key; there is no secondary key.
var productComparators = map[models.SortKey]productLess{
	models.SortByCreatedAt: func(a, b *models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) },
	models.SortByName:      func(a, b *models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	models.SortByPrice:     func(a, b *models.Product) bool { return a.Price < b.Price },
	models.SortByRating:    func(a, b *models.Product) bool { return a.Rating < b.Rating },
	models.SortByStock:     func(a, b *models.Product) bool { return a.Stock < b.Stock },
	models.SortByViews:     func(a, b *models.Product) bool { return a.Views < b.Views },
	models.SortBySales:     func(a, b *models.Product) bool { return a.Sales < b.Sales },
}

func comparatorFor(key models.SortKey) productLess {
	if less, ok := productComparators[key]; ok {
		return less
	}
	return productComparators[models.SortByCreatedAt]
}

// sortProducts sorts in place. The sort is stable, so equal keys keep their
// collection order in both directions.
func sortProducts(items []models.Product, key models.SortKey, order models.SortOrder) {
	less := comparatorFor(key)
	if order == models.SortAsc {
		sort.SliceStable(items, func(i, j int) bool { return less(&items[i], &items[j]) })
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return less(&items[j], &items[i]) })
}
