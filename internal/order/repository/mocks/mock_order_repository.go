package mocks

import (
	"context"
	"time"

	invdomain "github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/order/domain"
	"github.com/rdlaksana/store-inventory-service/internal/order/repository"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (repository.DBTX, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repository.DBTX), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetProductStockForUpdate(ctx context.Context, dbops repository.DBTX, productID int64) (int, error) {
	args := m.Called(ctx, dbops, productID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) DecrementProductStock(ctx context.Context, dbops repository.DBTX, productID int64, amount int) error {
	args := m.Called(ctx, dbops, productID, amount)
	return args.Error(0)
}

func (m *MockOrderRepository) InsertOrder(ctx context.Context, dbops repository.DBTX, order *domain.Order) error {
	args := m.Called(ctx, dbops, order)
	if order != nil && args.Error(0) == nil {
		order.ID = 1 // ID diset oleh mock
		order.OrderDate = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockOrderRepository) ListProductsPurchasedByCustomer(ctx context.Context, customerID int64) ([]invdomain.Product, error) {
	args := m.Called(ctx, customerID)
	if products := args.Get(0); products != nil {
		return products.([]invdomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) MostSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	args := m.Called(ctx)
	if sales := args.Get(0); sales != nil {
		return sales.([]domain.ProductSales), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) LeastSoldProducts(ctx context.Context) ([]domain.ProductSales, error) {
	args := m.Called(ctx)
	if sales := args.Get(0); sales != nil {
		return sales.([]domain.ProductSales), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) NeverSoldProducts(ctx context.Context) ([]invdomain.Product, error) {
	args := m.Called(ctx)
	if products := args.Get(0); products != nil {
		return products.([]invdomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ProductsPurchasedBetween(ctx context.Context, start, end time.Time) ([]invdomain.Product, error) {
	args := m.Called(ctx, start, end)
	if products := args.Get(0); products != nil {
		return products.([]invdomain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}
