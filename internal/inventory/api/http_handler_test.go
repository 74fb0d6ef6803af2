package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupInventoryRouter(mockService *mocks.MockInventoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewInventoryHandler(mockService)
	// Middleware manager diganti no-op, autentikasi dites terpisah
	handler.RegisterRoutes(router.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return router
}

func TestInventoryHandler_AddProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("AddProduct", mock.Anything, mock.Anything).
			Return(&domain.Product{ID: 7, Name: "Kopi Bubuk", Brand: "Aruna", Price: 25000, Quantity: 10}, nil).Once()

		body := bytes.NewBufferString(`{"name":"Kopi Bubuk","brand":"Aruna","price":25000,"quantity":10}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
		mockService.AssertExpectations(t)
	})

	t.Run("Quantity check violation maps to 400", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("AddProduct", mock.Anything, mock.Anything).
			Return(nil, repository.ErrNegativeQuantity).Once()

		body := bytes.NewBufferString(`{"name":"Kopi Bubuk","brand":"Aruna","price":25000,"quantity":10}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestInventoryHandler_Restock(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("Restock", mock.Anything, int64(7), 12).Return(nil).Once()

		body := bytes.NewBufferString(`{"amount":12}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/7/restock", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Quantity check violation maps to 400", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("Restock", mock.Anything, int64(7), 12).
			Return(repository.ErrNegativeQuantity).Once()

		body := bytes.NewBufferString(`{"amount":12}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/7/restock", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Unknown product maps to 404", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("Restock", mock.Anything, int64(99), 3).
			Return(repository.ErrProductNotFound).Once()

		body := bytes.NewBufferString(`{"amount":3}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products/99/restock", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestInventoryHandler_RemoveProduct(t *testing.T) {
	t.Run("Product with order history maps to 409", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)
		mockService.On("RemoveProduct", mock.Anything, int64(5)).
			Return(repository.ErrProductHasOrders).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Non-numeric id maps to 400", func(t *testing.T) {
		mockService := new(mocks.MockInventoryService)
		router := setupInventoryRouter(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "RemoveProduct", mock.Anything, mock.Anything)
	})
}
