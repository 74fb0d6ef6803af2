package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

var (
	ErrInvalidProductInput  = errors.New("product name and brand are required, price and quantity must not be negative")
	ErrInvalidRestockAmount = errors.New("restock amount must be greater than zero")
)

type InventoryService interface {
	AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
	Restock(ctx context.Context, productID int64, amount int) error
	RemoveProduct(ctx context.Context, productID int64) error
	CheckLowStock(ctx context.Context) // Fungsi untuk scheduler
	Stop()                             // Menghentikan scheduler saat shutdown
}

type inventoryServiceImpl struct {
	repo              repository.ProductRepository
	scheduler         *cron.Cron
	lowStockThreshold int
}

func NewInventoryService(repo repository.ProductRepository, lowStockThreshold int) InventoryService {
	s := &inventoryServiceImpl{
		repo:              repo,
		scheduler:         cron.New(cron.WithSeconds()),
		lowStockThreshold: lowStockThreshold,
	}
	s.initScheduler()
	return s
}

func (s *inventoryServiceImpl) initScheduler() {
	spec := "0 0 * * * *" // Setiap jam
	s.scheduler.AddFunc(spec, func() {
		// Gunakan context.Background() karena ini adalah background job
		s.CheckLowStock(context.Background())
	})
	s.scheduler.Start()
	logger.Info(fmt.Sprintf("Low stock scheduler initialized with spec '%s' and threshold %d", spec, s.lowStockThreshold))
}

// Stop menghentikan scheduler low stock. Job yang sedang berjalan
// dibiarkan selesai dulu.
func (s *inventoryServiceImpl) Stop() {
	s.scheduler.Stop()
}

// CheckLowStock menulis warning untuk setiap produk yang stoknya sudah di atau
// di bawah threshold, supaya manajer toko tahu kapan harus restock.
func (s *inventoryServiceImpl) CheckLowStock(ctx context.Context) {
	products, err := s.repo.ListProductsAtOrBelow(ctx, s.lowStockThreshold)
	if err != nil {
		logger.Error("CheckLowStock: failed to list low stock products", err)
		return
	}
	if len(products) == 0 {
		return
	}
	for _, p := range products {
		logger.Warn(fmt.Sprintf("Low stock: product %d (%s %s) has %d unit(s) left", p.ID, p.Brand, p.Name, p.Quantity))
	}
}

func (s *inventoryServiceImpl) AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)
	// Validasi inti tidak bergantung pada binding tag di layer HTTP
	if req.Name == "" || req.Brand == "" || req.Price < 0 || req.Quantity < 0 {
		return nil, ErrInvalidProductInput
	}

	product := &domain.Product{
		Name:     req.Name,
		Brand:    req.Brand,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		logger.Error("Svc.AddProduct: repo error", err)
		return nil, err
	}
	return product, nil
}

func (s *inventoryServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *inventoryServiceImpl) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *inventoryServiceImpl) Restock(ctx context.Context, productID int64, amount int) error {
	if amount <= 0 {
		return ErrInvalidRestockAmount
	}
	return s.repo.IncreaseQuantity(ctx, productID, amount)
}

func (s *inventoryServiceImpl) RemoveProduct(ctx context.Context, productID int64) error {
	return s.repo.DeleteProduct(ctx, productID)
}
