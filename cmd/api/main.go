package main

import (
	"os"

	"github.com/prathibhasolutions/prathibha-tech/internal/config"
	"github.com/prathibhasolutions/prathibha-tech/internal/database"
	"github.com/prathibhasolutions/prathibha-tech/internal/handler"
	"github.com/prathibhasolutions/prathibha-tech/internal/middleware"
	"github.com/prathibhasolutions/prathibha-tech/internal/repository"
	"github.com/prathibhasolutions/prathibha-tech/internal/service"
	"github.com/prathibhasolutions/prathibha-tech/internal/websocket"
	"github.com/prathibhasolutions/prathibha-tech/pkg/render"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// @title           Prathibha Back Office API
// @version         1.0
// @description     Stock, invoicing, quotations, finance ledger, and audit trail for a small hardware business.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := config.GetLogger()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("No configs/.env file found or error loading it")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "postgres")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Info("Connected to PostgreSQL successfully")

	upi := render.UPIConfig{
		VPA:       os.Getenv("UPI_ID"),
		PayeeName: os.Getenv("UPI_PAYEE_NAME"),
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	stockRepo := repository.NewStockRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	financeRepo := repository.NewFinanceRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewInventoryMovementRepository(db)
	userRepo := repository.NewUserRepository(db)

	reconciler := service.NewStockReconciler(stockRepo)

	stockService := service.NewStockService(stockRepo, auditRepo, txManager, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, financeRepo, auditRepo, txManager, reconciler, wsHub, log, upi)
	quotationService := service.NewQuotationService(quotationRepo, auditRepo, txManager)
	financeService := service.NewFinanceService(financeRepo, auditRepo, txManager)
	auditService := service.NewAuditService(auditRepo)
	inventoryService := service.NewInventoryService(productRepo, movementRepo, auditRepo, txManager)
	dashboardService := service.NewDashboardService(financeRepo, invoiceRepo, stockRepo, productRepo, movementRepo)
	userService := service.NewUserService(userRepo, auditRepo, txManager)

	// Initialize Handlers
	stockHandler := handler.NewStockHandler(stockService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	financeHandler := handler.NewFinanceHandler(financeService)
	auditHandler := handler.NewAuditHandler(auditService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	warehouseHandler := handler.NewWarehouseHandler(inventoryService)
	userHandler := handler.NewUserHandler(userService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:5174"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	root := router.Group("")
	stockHandler.RegisterRoutes(root)
	invoiceHandler.RegisterRoutes(root)
	quotationHandler.RegisterRoutes(root)
	financeHandler.RegisterRoutes(root)
	auditHandler.RegisterRoutes(root)
	dashboardHandler.RegisterRoutes(root)
	warehouseHandler.RegisterRoutes(root)
	userHandler.RegisterRoutes(root)

	port := envOr("PORT", "8080")

	log.Infof("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
