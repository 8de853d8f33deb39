// internal/models/review.go
package models

import (
	"time"
)

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	Helpful   int64     `json:"helpful"`
}

type ReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	UserName  string `json:"user_name" validate:"required,notblank,max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,notblank,max=5000"`
}
