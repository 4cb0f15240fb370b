package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pizza-delivery-api/config"
	"pizza-delivery-api/handlers"
	"pizza-delivery-api/inventory"
	"pizza-delivery-api/middleware"
	"pizza-delivery-api/monitor"
	"pizza-delivery-api/notify"
	"pizza-delivery-api/routes"
	"pizza-delivery-api/seed"
	"pizza-delivery-api/settlement"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := seed.Run(db); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	notifier := notify.LogNotifier{}
	ledger := inventory.NewLedger(db)
	workflow := settlement.NewWorkflow(db, ledger, notifier, settlement.Pricing{
		TaxRate:           cfg.TaxRate,
		FreeDeliveryAbove: cfg.FreeDeliveryAbove,
		DeliveryFee:       cfg.DeliveryFee,
	})
	auth := middleware.NewAuth(cfg.JWTSecret, db)
	h := handlers.New(db, cfg, auth, ledger, workflow, notifier)

	// Scheduled low-stock scan, stopped via context on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	stockMonitor := monitor.New(ledger, notifier, cfg.ScanInterval, cfg.ScanTimeout)
	stockMonitor.Start(ctx)
	defer stockMonitor.Stop()

	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Pizza Delivery API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, h)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
