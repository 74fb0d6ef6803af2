package domain

import (
	"time"

	invdomain "github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
)

type Order struct {
	ID         int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	OrderDate  time.Time `json:"order_date"` // Tanggal kalender, tanpa komponen waktu
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}

type PurchaseRequest struct {
	CustomerID int64 `json:"customer_id" binding:"required"`
	ProductID  int64 `json:"product_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
}

type PurchaseResponse struct {
	OrderID int64 `json:"order_id"`
}

// ProductSales adalah baris laporan most/least sold: produk plus total kuantitas
// yang pernah dipesan (agregat SUM atas orders.quantity, dihitung saat query).
// Angka ini berbeda dengan Product.Quantity yang merupakan stok berjalan.
type ProductSales struct {
	invdomain.Product
	TotalOrdered int64 `json:"total_ordered"`
}

type DateRangeRequest struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
