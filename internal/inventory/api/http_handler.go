package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/domain"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/inventory/service"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

// RegisterRoutes memasang route produk. Operasi mutasi hanya untuk manager,
// middleware-nya disuntik dari main.
func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup, requireManager gin.HandlerFunc) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.POST("", requireManager, h.AddProduct)
		productRoutes.POST("/:id/restock", requireManager, h.Restock)
		productRoutes.DELETE("/:id", requireManager, h.RemoveProduct)
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return 0, false
	}
	return id, true
}

func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("AddProduct Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.inventoryService.AddProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProductInput) || errors.Is(err, repository.ErrNegativeQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("AddProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}

	c.JSON(http.StatusCreated, domain.CreateProductResponse{ID: product.ID})
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.inventoryService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("ListProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InventoryHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.inventoryService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req domain.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Restock Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	err := h.inventoryService.Restock(c.Request.Context(), id, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRestockAmount) || errors.Is(err, repository.ErrNegativeQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Restock Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restock product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
}

func (h *InventoryHandler) RemoveProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.inventoryService.RemoveProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrProductHasOrders) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()}) // 409 Conflict
			return
		}
		logger.Error("RemoveProduct Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
