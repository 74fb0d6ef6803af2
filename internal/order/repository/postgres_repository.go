package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	custrepo "github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	invdomain "github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	invrepo "github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/order/domain"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"

	"github.com/lib/pq" // Untuk pq.Error
)

var (
	ErrProductOutOfStock = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
)

// DBTX adalah interface yang bisa berupa *sql.DB atau *sql.Tx
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
	Commit() error
	Rollback() error
}

type OrderRepository interface {
	// Blok transaksi pembelian: service yang mengatur urutannya
	// (lock stok -> cek -> kurangi -> tulis order) di atas satu DBTX.
	BeginTx(ctx context.Context) (DBTX, error)
	GetProductStockForUpdate(ctx context.Context, dbops DBTX, productID int64) (int, error)
	DecrementProductStock(ctx context.Context, dbops DBTX, productID int64, amount int) error
	InsertOrder(ctx context.Context, dbops DBTX, order *domain.Order) error

	ListProductsPurchasedByCustomer(ctx context.Context, customerID int64) ([]invdomain.Product, error)

	// Reporting (read-only, agregat di atas join products x orders)
	MostSoldProducts(ctx context.Context) ([]domain.ProductSales, error)
	LeastSoldProducts(ctx context.Context) ([]domain.ProductSales, error)
	NeverSoldProducts(ctx context.Context) ([]invdomain.Product, error)
	ProductsPurchasedBetween(ctx context.Context, start, end time.Time) ([]invdomain.Product, error)
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) BeginTx(ctx context.Context) (DBTX, error) {
	return r.db.BeginTx(ctx, nil)
}

// GetProductStockForUpdate mengunci baris produk (FOR UPDATE) dan mengembalikan
// stok saat ini, supaya dua pembelian bersamaan tidak sama-sama lolos cek stok.
func (r *postgresOrderRepository) GetProductStockForUpdate(ctx context.Context, dbops DBTX, productID int64) (int, error) {
	var stock int
	err := dbops.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = $1 FOR UPDATE`, productID).
		Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, invrepo.ErrProductNotFound
		}
		logger.Error("GetProductStockForUpdate: failed to lock product row", err)
		return 0, err
	}
	return stock, nil
}

// DecrementProductStock mengurangi stok dengan guard quantity >= $1 sebagai
// jaring terakhir di bawah cek stok milik service.
func (r *postgresOrderRepository) DecrementProductStock(ctx context.Context, dbops DBTX, productID int64, amount int) error {
	res, err := dbops.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = NOW() WHERE id = $2 AND quantity >= $1`,
		amount, productID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" { // check_violation
			logger.Error("DecrementProductStock: stock check violation", err)
			return ErrInsufficientStock
		}
		logger.Error("DecrementProductStock: exec failed", err)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// InsertOrder menambah baris ledger; order_date adalah tanggal kalender hari ini.
func (r *postgresOrderRepository) InsertOrder(ctx context.Context, dbops DBTX, order *domain.Order) error {
	err := dbops.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, product_id, order_date, quantity, created_at)
         VALUES ($1, $2, CURRENT_DATE, $3, NOW()) RETURNING order_id, order_date, created_at`,
		order.CustomerID, order.ProductID, order.Quantity).
		Scan(&order.ID, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			logger.Error("InsertOrder: customer does not exist", err)
			return custrepo.ErrCustomerNotFound
		}
		logger.Error("InsertOrder: failed to insert order", err)
		return err
	}
	return nil
}

func (r *postgresOrderRepository) scanProducts(rows *sql.Rows, label string) ([]invdomain.Product, error) {
	defer rows.Close()

	products := []invdomain.Product{}
	for rows.Next() {
		var p invdomain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.Error(label+": scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListProductsPurchasedByCustomer mengembalikan himpunan produk (distinct) yang
// pernah dibeli customer, bukan baris order mentah.
func (r *postgresOrderRepository) ListProductsPurchasedByCustomer(ctx context.Context, customerID int64) ([]invdomain.Product, error) {
	query := `SELECT DISTINCT p.id, p.name, p.brand, p.price, p.quantity, p.created_at, p.updated_at
              FROM products p
              JOIN orders o ON o.product_id = p.id
              WHERE o.customer_id = $1
              ORDER BY p.id ASC`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		logger.Error("ListProductsPurchasedByCustomer: query failed", err)
		return nil, err
	}
	return r.scanProducts(rows, "ListProductsPurchasedByCustomer")
}

func (r *postgresOrderRepository) querySoldProducts(ctx context.Context, direction, label string) ([]domain.ProductSales, error) {
	// Inner join: hanya produk yang pernah terjual; populasinya komplemen
	// persis dari NeverSoldProducts. Tie-break id ASC supaya deterministik.
	query := `SELECT p.id, p.name, p.brand, p.price, p.quantity, p.created_at, p.updated_at,
                     SUM(o.quantity) AS total_ordered
              FROM products p
              JOIN orders o ON o.product_id = p.id
              GROUP BY p.id
              ORDER BY total_ordered ` + direction + `, p.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error(label+": query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.ProductSales{}
	for rows.Next() {
		var ps domain.ProductSales
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.Brand, &ps.Price, &ps.Quantity,
			&ps.CreatedAt, &ps.UpdatedAt, &ps.TotalOrdered); err != nil {
			logger.Error(label+": scan failed", err)
			return nil, err
		}
		sales = append(sales, ps)
	}
	return sales, rows.Err()
}

func (r *postgresOrderRepository) MostSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return r.querySoldProducts(ctx, "DESC", "MostSoldProducts")
}

func (r *postgresOrderRepository) LeastSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return r.querySoldProducts(ctx, "ASC", "LeastSoldProducts")
}

func (r *postgresOrderRepository) NeverSoldProducts(ctx context.Context) ([]invdomain.Product, error) {
	query := `SELECT p.id, p.name, p.brand, p.price, p.quantity, p.created_at, p.updated_at
              FROM products p
              LEFT JOIN orders o ON o.product_id = p.id
              WHERE o.order_id IS NULL
              ORDER BY p.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("NeverSoldProducts: query failed", err)
		return nil, err
	}
	return r.scanProducts(rows, "NeverSoldProducts")
}

// ProductsPurchasedBetween mengembalikan satu baris produk per order yang
// tanggalnya masuk rentang [start, end] inklusif; deduplikasi per produk
// dikerjakan service supaya semantik distinct-nya bisa diuji.
func (r *postgresOrderRepository) ProductsPurchasedBetween(ctx context.Context, start, end time.Time) ([]invdomain.Product, error) {
	query := `SELECT p.id, p.name, p.brand, p.price, p.quantity, p.created_at, p.updated_at
              FROM products p
              JOIN orders o ON o.product_id = p.id
              WHERE o.order_date BETWEEN $1 AND $2
              ORDER BY p.id ASC, o.order_id ASC`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		logger.Error("ProductsPurchasedBetween: query failed", err)
		return nil, err
	}
	return r.scanProducts(rows, "ProductsPurchasedBetween")
}
