package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rdlaksana/store-inventory-service/internal/customer/domain"
	"github.com/rdlaksana/store-inventory-service/internal/customer/service"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(cs service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

func (h *CustomerHandler) RegisterRoutes(router *gin.RouterGroup) {
	customerRoutes := router.Group("/customers")
	{
		customerRoutes.POST("/register", h.Register)
		customerRoutes.POST("/login", h.Login)
	}
}

func (h *CustomerHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Register: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	customer, err := h.customerService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrCustomerAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Register: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Login: bad request", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	response, err := h.customerService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Login: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, response)
}
