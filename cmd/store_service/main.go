package main

import (
	"github.com/gin-gonic/gin"
	customerAPI "github.com/rdlaksana/store-inventory-service/internal/customer/api"
	customerRepo "github.com/rdlaksana/store-inventory-service/internal/customer/repository"
	customerService "github.com/rdlaksana/store-inventory-service/internal/customer/service"
	inventoryAPI "github.com/rdlaksana/store-inventory-service/internal/inventory/api"
	inventoryRepo "github.com/rdlaksana/store-inventory-service/internal/inventory/repository"
	inventoryService "github.com/rdlaksana/store-inventory-service/internal/inventory/service"
	orderAPI "github.com/rdlaksana/store-inventory-service/internal/order/api"
	orderRepo "github.com/rdlaksana/store-inventory-service/internal/order/repository"
	orderService "github.com/rdlaksana/store-inventory-service/internal/order/service"
	"github.com/rdlaksana/store-inventory-service/internal/platform/config"
	"github.com/rdlaksana/store-inventory-service/internal/platform/database"
	"github.com/rdlaksana/store-inventory-service/internal/platform/logger"
	"github.com/rdlaksana/store-inventory-service/internal/platform/web"
)

func main() {
	// Load Config
	dbCfg := config.LoadStoreDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	lowStockThreshold := config.GetEnvAsInt("LOW_STOCK_THRESHOLD", 5)

	logger.Info("Starting Store Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database for Store Service", err)
	}
	defer db.Close()

	// Setup Dependencies
	custRepository := customerRepo.NewPostgresCustomerRepository(db)
	custService := customerService.NewCustomerService(custRepository)
	customerHandler := customerAPI.NewCustomerHandler(custService)

	invRepository := inventoryRepo.NewPostgresProductRepository(db)
	invService := inventoryService.NewInventoryService(invRepository, lowStockThreshold)
	defer invService.Stop()
	inventoryHandler := inventoryAPI.NewInventoryHandler(invService)

	ordRepository := orderRepo.NewPostgresOrderRepository(db)
	ordService := orderService.NewOrderService(ordRepository, custRepository)
	orderHandler := orderAPI.NewOrderHandler(ordService)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false
	router.Use(web.RequestID())

	requireManager := customerAPI.RequireManager()

	apiV1 := router.Group("/api/v1")
	customerHandler.RegisterRoutes(apiV1)
	inventoryHandler.RegisterRoutes(apiV1, requireManager)
	orderHandler.RegisterRoutes(apiV1, requireManager)

	logger.Info("Store Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Store Service server", err)
	}
}
