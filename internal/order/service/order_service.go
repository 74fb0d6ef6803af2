package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	custrepo "github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	invdomain "github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/order/domain"
	"github.com/rdlaksana/store-inventory-service/internal/order/repository"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

var (
	ErrInvalidPurchaseQuantity = errors.New("purchase quantity must be greater than zero")
	ErrInvalidDateRange        = errors.New("start date must not be after end date")
)

type OrderService interface {
	Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.Order, error)
	ListPurchasesForCustomer(ctx context.Context, customerID int64) ([]invdomain.Product, error)

	MostSoldProducts(ctx context.Context) ([]domain.ProductSales, error)
	LeastSoldProducts(ctx context.Context) ([]domain.ProductSales, error)
	NeverSoldProducts(ctx context.Context) ([]invdomain.Product, error)
	ProductsPurchasedBetween(ctx context.Context, start, end time.Time) ([]invdomain.Product, error)
}

type orderServiceImpl struct {
	orderRepo    repository.OrderRepository
	customerRepo custrepo.CustomerRepository
}

func NewOrderService(or repository.OrderRepository, cr custrepo.CustomerRepository) OrderService {
	return &orderServiceImpl{
		orderRepo:    or,
		customerRepo: cr,
	}
}

// isSerializationFailure mengenali serialization_failure (40001) dan
// deadlock_detected (40P01) dari PostgreSQL.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}

func (s *orderServiceImpl) Purchase(ctx context.Context, req domain.PurchaseRequest) (*domain.Order, error) {
	if req.Quantity <= 0 {
		return nil, ErrInvalidPurchaseQuantity
	}

	// Validasi customer dulu supaya pesan errornya jelas; produk divalidasi
	// di dalam transaksi saat baris di-lock.
	if _, err := s.customerRepo.GetCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, custrepo.ErrCustomerNotFound) {
			return nil, err
		}
		logger.Error("Purchase: failed to load customer", err)
		return nil, err
	}

	order := &domain.Order{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	}

	err := s.placeOrder(ctx, order)
	if err != nil && isSerializationFailure(err) {
		// Retry sekali; kalau masih gagal karena serialisasi, anggap stok
		// sedang diperebutkan dan laporkan sebagai stok tidak cukup.
		logger.Warn(fmt.Sprintf("Purchase: serialization failure for product %d, retrying once", req.ProductID))
		err = s.placeOrder(ctx, order)
		if err != nil && isSerializationFailure(err) {
			return nil, repository.ErrInsufficientStock
		}
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// placeOrder mengerjakan seluruh pembelian dalam satu transaksi: kunci baris
// produk (FOR UPDATE), cek stok (habis total dulu, baru kurang), kurangi stok,
// lalu tulis baris order. Stok dan ledger order bergerak bersama atau tidak
// sama sekali.
func (s *orderServiceImpl) placeOrder(ctx context.Context, order *domain.Order) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("placeOrder: begin tx failed", err)
		return err
	}
	defer tx.Rollback() // Rollback jika tidak di-commit

	stock, err := s.orderRepo.GetProductStockForUpdate(ctx, tx, order.ProductID)
	if err != nil {
		return err
	}

	if stock <= 0 {
		return repository.ErrProductOutOfStock
	}
	if order.Quantity > stock {
		return repository.ErrInsufficientStock
	}

	if err := s.orderRepo.DecrementProductStock(ctx, tx, order.ProductID, order.Quantity); err != nil {
		return err
	}
	if err := s.orderRepo.InsertOrder(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *orderServiceImpl) ListPurchasesForCustomer(ctx context.Context, customerID int64) ([]invdomain.Product, error) {
	if _, err := s.customerRepo.GetCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListProductsPurchasedByCustomer(ctx, customerID)
}

func (s *orderServiceImpl) MostSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return s.orderRepo.MostSoldProducts(ctx)
}

func (s *orderServiceImpl) LeastSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return s.orderRepo.LeastSoldProducts(ctx)
}

func (s *orderServiceImpl) NeverSoldProducts(ctx context.Context) ([]invdomain.Product, error) {
	return s.orderRepo.NeverSoldProducts(ctx)
}

// ProductsPurchasedBetween memakai semantik distinct-product: produk dengan
// minimal satu order di rentang muncul tepat satu kali walau order-nya banyak.
func (s *orderServiceImpl) ProductsPurchasedBetween(ctx context.Context, start, end time.Time) ([]invdomain.Product, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	rows, err := s.orderRepo.ProductsPurchasedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	// Repo mengembalikan satu baris per order yang cocok; dedup per produk di sini
	seen := make(map[int64]bool, len(rows))
	products := make([]invdomain.Product, 0, len(rows))
	for _, p := range rows {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		products = append(products, p)
	}
	return products, nil
}
