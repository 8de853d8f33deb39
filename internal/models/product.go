// internal/models/product.go
package models

import (
	"time"
)

type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Category       string            `json:"category"`
	Rating         float64           `json:"rating"`
	Stock          int               `json:"stock"`
	ImageURL       string            `json:"image_url"`
	CreatedAt      time.Time         `json:"created_at"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications"`
	IsActive       bool              `json:"is_active"`
	Views          int64             `json:"views"`
	Sales          int64             `json:"sales"`
}

// ProductInput is a partial product. Nil fields are left untouched on update.
type ProductInput struct {
	ID             string            `json:"id,omitempty"`
	Name           *string           `json:"name,omitempty" validate:"omitempty,notblank,max=255"`
	Description    *string           `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price          *float64          `json:"price,omitempty" validate:"omitempty,min=0"`
	Category       *string           `json:"category,omitempty" validate:"omitempty,max=100"`
	Rating         *float64          `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	Stock          *int              `json:"stock,omitempty" validate:"omitempty,min=0"`
	ImageURL       *string           `json:"image_url,omitempty" validate:"omitempty,max=2048"`
	Tags           []string          `json:"tags,omitempty" validate:"omitempty,dive,max=50"`
	Specifications map[string]string `json:"specifications,omitempty" validate:"omitempty,dive,keys,notblank,endkeys,max=500"`
	IsActive       *bool             `json:"is_active,omitempty"`
}

// Clone returns a deep copy so callers never share slices or maps with the stored record.
func (p Product) Clone() Product {
	out := p
	if p.Tags != nil {
		out.Tags = append([]string{}, p.Tags...)
	}
	if p.Specifications != nil {
		out.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			out.Specifications[k] = v
		}
	}
	return out
}

// Apply merges the non-nil fields of in into p. Identity, creation time and
// the view/sales counters are never touched.
func (p *Product) Apply(in *ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Tags != nil {
		p.Tags = append([]string{}, in.Tags...)
	}
	if in.Specifications != nil {
		p.Specifications = make(map[string]string, len(in.Specifications))
		for k, v := range in.Specifications {
			p.Specifications[k] = v
		}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}
