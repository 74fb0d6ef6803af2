package domain

import (
	"time"
)

type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Price     int64     `json:"price"` // Dalam satuan mata uang terkecil (mis. sen), bukan float
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Brand    string `json:"brand" binding:"required"`
	Price    int64  `json:"price" binding:"min=0"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

type RestockRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

type CreateProductResponse struct {
	ID int64 `json:"id"`
}
