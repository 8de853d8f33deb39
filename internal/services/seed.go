// internal/services/seed.go
package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/merchio-backend/internal/models"
)

// DefaultSeedProducts returns the starter catalog written into an empty store.
// Each call mints fresh ids; creation times step back one minute per product
// so the default newest-first listing keeps this order.
func DefaultSeedProducts(now time.Time) []models.Product {
	products := []models.Product{
		{
			Name:        "Basic Tee",
			Description: "Soft cotton tee in charcoal. Perfect for everyday wear with a comfortable fit and premium quality fabric.",
			Price:       199000,
			Category:    "Apparel",
			Rating:      4,
			Stock:       32,
			ImageURL:    "https://images.unsplash.com/photo-1512436991641-6745cdb1723f?q=80&w=1200&auto=format&fit=crop",
			Tags:        []string{"cotton", "casual", "basic"},
			Specifications: map[string]string{
				"Material": "100% Cotton",
				"Size":     "S, M, L, XL",
				"Color":    "Charcoal",
				"Care":     "Machine wash cold",
			},
			Views: 156,
			Sales: 23,
		},
		{
			Name:        "Canvas Tote",
			Description: "Durable everyday tote bag made from premium canvas. Spacious interior with reinforced handles.",
			Price:       259000,
			Category:    "Bags",
			Rating:      5,
			Stock:       18,
			ImageURL:    "https://images.unsplash.com/photo-1546421845-6471bdcf3ebf?q=80&w=1200&auto=format&fit=crop",
			Tags:        []string{"canvas", "tote", "eco-friendly"},
			Specifications: map[string]string{
				"Material":   "Heavy-duty Canvas",
				"Dimensions": "40cm x 35cm x 10cm",
				"Weight":     "500g",
				"Features":   "Reinforced handles, Interior pocket",
			},
			Views: 89,
			Sales: 12,
		},
		{
			Name:        "Ceramic Mug",
			Description: "12oz matte black ceramic mug with ergonomic handle. Perfect for coffee, tea, or any hot beverage.",
			Price:       99000,
			Category:    "Home",
			Rating:      3,
			Stock:       54,
			ImageURL:    "https://images.unsplash.com/photo-1485808191679-5f86510681a2?q=80&w=1200&auto=format&fit=crop",
			Tags:        []string{"ceramic", "mug", "kitchen"},
			Specifications: map[string]string{
				"Material":   "Ceramic",
				"Capacity":   "12oz (350ml)",
				"Finish":     "Matte black",
				"Dishwasher": "Safe",
			},
			Views: 203,
			Sales: 45,
		},
		{
			Name:        "Wireless Headphones",
			Description: "Premium wireless headphones with noise cancellation and 30-hour battery life.",
			Price:       1299000,
			Category:    "Electronics",
			Rating:      4.5,
			Stock:       8,
			ImageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?q=80&w=1200&auto=format&fit=crop",
			Tags:        []string{"wireless", "headphones", "noise-cancellation"},
			Specifications: map[string]string{
				"Battery":            "30 hours",
				"Connectivity":       "Bluetooth 5.0",
				"Noise Cancellation": "Active",
				"Weight":             "250g",
			},
			Views: 312,
			Sales: 67,
		},
		{
			Name:        "Leather Wallet",
			Description: "Genuine leather wallet with RFID blocking technology and multiple card slots.",
			Price:       399000,
			Category:    "Accessories",
			Rating:      4.2,
			Stock:       25,
			ImageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?q=80&w=1200&auto=format&fit=crop",
			Tags:        []string{"leather", "wallet", "rfid"},
			Specifications: map[string]string{
				"Material":        "Genuine Leather",
				"RFID Protection": "Yes",
				"Card Slots":      "8",
				"Coin Pocket":     "Yes",
			},
			Views: 178,
			Sales: 34,
		},
	}

	now = now.UTC()
	for i := range products {
		products[i].ID = uuid.NewString()
		products[i].CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		products[i].IsActive = true
	}
	return products
}
