package service

import (
	"context"
	"testing"

	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestService(t *testing.T, mockRepo *mocks.MockProductRepository) InventoryService {
	service := NewInventoryService(mockRepo, 5)
	t.Cleanup(service.Stop)
	return service
}

func TestInventoryService_AddProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := newTestService(t, mockRepo)
	ctx := context.TODO()

	t.Run("Successful creation", func(t *testing.T) {
		req := domain.CreateProductRequest{Name: "Sepatu Lari", Brand: "Ortus", Price: 450000, Quantity: 10}
		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == req.Name && p.Brand == req.Brand && p.Price == req.Price && p.Quantity == req.Quantity
		})).Return(nil).Once()

		product, err := service.AddProduct(ctx, req)
		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, int64(1), product.ID) // ID diset oleh mock
		mockRepo.AssertExpectations(t)
	})

	t.Run("Negative price rejected", func(t *testing.T) {
		req := domain.CreateProductRequest{Name: "Sepatu Lari", Brand: "Ortus", Price: -1, Quantity: 10}
		product, err := service.AddProduct(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidProductInput)
		assert.Nil(t, product)
	})

	t.Run("Negative quantity rejected", func(t *testing.T) {
		req := domain.CreateProductRequest{Name: "Sepatu Lari", Brand: "Ortus", Price: 450000, Quantity: -3}
		_, err := service.AddProduct(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidProductInput)
	})

	t.Run("Blank name rejected", func(t *testing.T) {
		req := domain.CreateProductRequest{Name: "   ", Brand: "Ortus", Price: 450000, Quantity: 3}
		_, err := service.AddProduct(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidProductInput)
	})
}

func TestInventoryService_ListProducts(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := newTestService(t, mockRepo)
	ctx := context.TODO()

	expected := []domain.Product{
		{ID: 1, Name: "Kopi Bubuk", Brand: "Aruna", Price: 25000, Quantity: 40},
		{ID: 2, Name: "Teh Celup", Brand: "Aruna", Price: 12000, Quantity: 15},
	}
	mockRepo.On("ListProducts", ctx).Return(expected, nil).Once()

	products, err := service.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestInventoryService_Restock(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := newTestService(t, mockRepo)
	ctx := context.TODO()

	t.Run("Successful restock", func(t *testing.T) {
		mockRepo.On("IncreaseQuantity", ctx, int64(7), 12).Return(nil).Once()
		err := service.Restock(ctx, 7, 12)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Zero amount rejected", func(t *testing.T) {
		err := service.Restock(ctx, 7, 0)
		assert.ErrorIs(t, err, ErrInvalidRestockAmount)
	})

	t.Run("Negative amount rejected", func(t *testing.T) {
		err := service.Restock(ctx, 7, -4)
		assert.ErrorIs(t, err, ErrInvalidRestockAmount)
		mockRepo.AssertNotCalled(t, "IncreaseQuantity", ctx, int64(7), -4)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo.On("IncreaseQuantity", ctx, int64(99), 3).Return(repository.ErrProductNotFound).Once()
		err := service.Restock(ctx, 99, 3)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestInventoryService_RemoveProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := newTestService(t, mockRepo)
	ctx := context.TODO()

	t.Run("Successful delete", func(t *testing.T) {
		mockRepo.On("DeleteProduct", ctx, int64(3)).Return(nil).Once()
		err := service.RemoveProduct(ctx, 3)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		mockRepo.On("DeleteProduct", ctx, int64(42)).Return(repository.ErrProductNotFound).Once()
		err := service.RemoveProduct(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("Product with order history rejected", func(t *testing.T) {
		mockRepo.On("DeleteProduct", ctx, int64(5)).Return(repository.ErrProductHasOrders).Once()
		err := service.RemoveProduct(ctx, 5)
		assert.ErrorIs(t, err, repository.ErrProductHasOrders)
	})
}

func TestInventoryService_CheckLowStock(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	service := newTestService(t, mockRepo)
	ctx := context.TODO()

	lowStock := []domain.Product{
		{ID: 2, Name: "Teh Celup", Brand: "Aruna", Quantity: 2},
	}
	mockRepo.On("ListProductsAtOrBelow", ctx, 5).Return(lowStock, nil).Once()

	service.CheckLowStock(ctx)
	mockRepo.AssertExpectations(t)
}
