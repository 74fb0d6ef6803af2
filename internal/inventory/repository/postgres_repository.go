package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq" // Untuk pq.Error
	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductHasOrders = errors.New("product has order history and cannot be deleted")
	ErrNegativeQuantity = errors.New("update results in negative quantity")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	IncreaseQuantity(ctx context.Context, id int64, amount int) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProductsAtOrBelow(ctx context.Context, threshold int) ([]domain.Product, error)
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO products (name, brand, price, quantity, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Brand, product.Price, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			logger.Error("CreateProduct: check violation", err)
			return ErrNegativeQuantity
		}
		logger.Error("CreateProduct: failed to insert product", err)
		return err
	}
	return nil
}

// ListProducts mengembalikan semua produk sesuai urutan penyimpanan (id ASC).
func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, brand, price, quantity, created_at, updated_at FROM products ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, brand, price, quantity, created_at, updated_at FROM products WHERE id = $1`
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	return &p, nil
}

// IncreaseQuantity menambah stok secara atomik di SQL, bukan read-modify-write.
func (r *postgresProductRepository) IncreaseQuantity(ctx context.Context, id int64, amount int) error {
	query := `UPDATE products SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, amount, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation (quantity < 0)
			logger.Error("IncreaseQuantity: check violation", err)
			return ErrNegativeQuantity
		}
		logger.Error("IncreaseQuantity: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct menolak penghapusan jika masih ada baris orders yang mereferensikan
// produk ini (FK ON DELETE RESTRICT). Riwayat order tidak pernah ikut terhapus.
func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			logger.Error("DeleteProduct: product still referenced by orders", err)
			return ErrProductHasOrders
		}
		logger.Error("DeleteProduct: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *postgresProductRepository) ListProductsAtOrBelow(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := `SELECT id, name, brand, price, quantity, created_at, updated_at
              FROM products WHERE quantity <= $1 ORDER BY quantity ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, threshold)
	if err != nil {
		logger.Error("ListProductsAtOrBelow: query failed", err)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error("ListProductsAtOrBelow: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
