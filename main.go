package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/controllers"
	"github.com/ohm-hive/orders-api/middleware"
	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/services"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting Ohm Hive orders API server...")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	store, err := services.InitFileStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	auth, err := services.InitAuthService(db, sessions, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	if err := auth.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	services.InitOrderService(db, store)
	services.InitNotifier(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := setupRouter(cfg)

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrate creates or updates every table
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.UploadedFile{}, &models.Admin{})
}

// newSessionStore uses Redis when REDIS_URL is set and memory otherwise
func newSessionStore(ctx context.Context, cfg *config.Config) (services.SessionStore, error) {
	if cfg.RedisURL == "" {
		log.Println("REDIS_URL not set, admin sessions are kept in memory")
		return services.NewMemorySessionStore(), nil
	}
	store, err := services.NewRedisSessionStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	log.Println("Admin sessions are stored in Redis")
	return store, nil
}

// setupRouter mounts every route on a new gin engine
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20
	router.Use(middleware.CORS(cfg.CORSOrigins))

	admin := middleware.RequireAdmin(services.GetAuthService())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		v1.GET("/services", controllers.ListServices)
		v1.POST("/pricing/quote", controllers.QuotePricing)

		v1.POST("/orders", controllers.SubmitOrder)
		v1.GET("/orders", admin, controllers.ListOrders)
		v1.GET("/orders/:orderNumber", controllers.GetOrder)
		v1.PATCH("/orders/:orderNumber", admin, controllers.UpdateOrder)
		v1.DELETE("/orders/:orderNumber", admin, controllers.DeleteOrder)
		v1.GET("/orders/:orderNumber/receipt", controllers.GetReceipt)
		v1.GET("/orders/:orderNumber/receipt/qr", controllers.GetReceiptQR)
		v1.GET("/orders/:orderNumber/receipt/qr.png", controllers.GetReceiptQRImage)

		v1.GET("/uploads/:filename", admin, controllers.DownloadFile)

		v1.POST("/admin/login", controllers.Login)
		v1.POST("/admin/logout", controllers.Logout)
		v1.GET("/admin/verify", admin, controllers.Verify)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ohm Hive API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"data": gin.H{
			"dialect": db.Dialector.Name(),
			"tables":  tables,
		},
	})
}
