// internal/handlers/query.go
package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/merchio-backend/internal/models"
	"github.com/javajoker/merchio-backend/internal/services"
	"github.com/javajoker/merchio-backend/internal/utils"
)

// parseProductQuery reads the listing parameters from the query string.
// Malformed values are dropped rather than rejected, so listing never fails
// because of a stale link.
func parseProductQuery(c *gin.Context, defaultPageSize int) services.ProductQuery {
	params := utils.GetPaginationParams(c, defaultPageSize)

	query := services.ProductQuery{
		Text:      strings.TrimSpace(c.Query("q")),
		Category:  c.Query("category"),
		Stock:     models.ParseStockFilter(c.Query("inStock")),
		SortBy:    models.ParseSortKey(c.Query("sortBy")),
		SortOrder: models.ParseSortOrder(c.Query("sortOrder")),
		Page:      params.Page,
		PageSize:  params.PageSize,
	}

	// Parse numeric bounds
	query.MinPrice = queryFloat(c, "minPrice")
	query.MaxPrice = queryFloat(c, "maxPrice")
	query.MinRating = queryFloat(c, "minRating")

	return query
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

// splitIDs parses a comma separated id list, dropping blanks and duplicates.
func splitIDs(raw string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}
