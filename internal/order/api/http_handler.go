package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	custrepo "github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	invrepo "github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	"github.com/rdlaksana/store-inventory-service/internal/order/domain"
	"github.com/rdlaksana/store-inventory-service/internal/order/repository"
	"github.com/rdlaksana/store-inventory-service/internal/order/service"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

const dateLayout = "2006-01-02"

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, requireManager gin.HandlerFunc) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.POST("", h.Purchase)
	}
	router.GET("/customers/:id/purchases", h.ListPurchasesForCustomer)

	// Laporan penjualan hanya untuk manager
	reportRoutes := router.Group("/reports", requireManager)
	{
		reportRoutes.GET("/most-sold", h.MostSoldProducts)
		reportRoutes.GET("/least-sold", h.LeastSoldProducts)
		reportRoutes.GET("/never-sold", h.NeverSoldProducts)
		reportRoutes.GET("/purchased", h.ProductsPurchasedBetween)
	}
}

func (h *OrderHandler) Purchase(c *gin.Context) {
	var req domain.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Purchase Hdl: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	order, err := h.orderService.Purchase(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPurchaseQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, custrepo.ErrCustomerNotFound), errors.Is(err, invrepo.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrProductOutOfStock), errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()}) // 409 Conflict
		default:
			logger.Error("Purchase Hdl: unhandled service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete purchase"})
		}
		return
	}

	c.JSON(http.StatusCreated, domain.PurchaseResponse{OrderID: order.ID})
}

func (h *OrderHandler) ListPurchasesForCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer id"})
		return
	}

	products, err := h.orderService.ListPurchasesForCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, custrepo.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ListPurchasesForCustomer Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchases"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *OrderHandler) MostSoldProducts(c *gin.Context) {
	sales, err := h.orderService.MostSoldProducts(c.Request.Context())
	if err != nil {
		logger.Error("MostSoldProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *OrderHandler) LeastSoldProducts(c *gin.Context) {
	sales, err := h.orderService.LeastSoldProducts(c.Request.Context())
	if err != nil {
		logger.Error("LeastSoldProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *OrderHandler) NeverSoldProducts(c *gin.Context) {
	products, err := h.orderService.NeverSoldProducts(c.Request.Context())
	if err != nil {
		logger.Error("NeverSoldProducts Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *OrderHandler) ProductsPurchasedBetween(c *gin.Context) {
	var req domain.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}

	products, err := h.orderService.ProductsPurchasedBetween(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("ProductsPurchasedBetween Hdl: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, products)
}
