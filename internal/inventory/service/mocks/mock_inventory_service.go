package mocks

import (
	"context"

	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/stretchr/testify/mock"
)

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) AddProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if res := args.Get(0); res != nil {
		return res.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInventoryService) Restock(ctx context.Context, productID int64, amount int) error {
	args := m.Called(ctx, productID, amount)
	return args.Error(0)
}

func (m *MockInventoryService) RemoveProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockInventoryService) CheckLowStock(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockInventoryService) Stop() {
	m.Called()
}
