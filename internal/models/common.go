// internal/models/common.go
package models

import (
	"strings"
	"time"
)

// KVEntry backs the gorm collection store: one row per namespaced collection.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191"`
	Value     string    `gorm:"column:entry_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Enums
type StockFilter string

const (
	StockFilterAll        StockFilter = "all"
	StockFilterInStock    StockFilter = "inStock"
	StockFilterOutOfStock StockFilter = "outOfStock"
	StockFilterLowStock   StockFilter = "lowStock"
)

// LowStockThreshold is the exclusive upper bound of the low-stock band.
const LowStockThreshold = 10

func ParseStockFilter(s string) StockFilter {
	switch StockFilter(s) {
	case StockFilterInStock, StockFilterOutOfStock, StockFilterLowStock:
		return StockFilter(s)
	default:
		return StockFilterAll
	}
}

type SortKey string

const (
	SortByCreatedAt SortKey = "createdAt"
	SortByName      SortKey = "name"
	SortByPrice     SortKey = "price"
	SortByRating    SortKey = "rating"
	SortByStock     SortKey = "stock"
	SortByViews     SortKey = "views"
	SortBySales     SortKey = "sales"
)

var sortKeys = map[string]SortKey{
	"createdat": SortByCreatedAt,
	"name":      SortByName,
	"price":     SortByPrice,
	"rating":    SortByRating,
	"stock":     SortByStock,
	"views":     SortByViews,
	"sales":     SortBySales,
}

// ParseSortKey accepts keys case-insensitively and falls back to createdAt.
func ParseSortKey(s string) SortKey {
	if key, ok := sortKeys[strings.ToLower(s)]; ok {
		return key
	}
	return SortByCreatedAt
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}
