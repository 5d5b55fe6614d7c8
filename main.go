package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/catprinter/config"
	"github.com/yeremiapane/catprinter/middlewares"
	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/router"
	"github.com/yeremiapane/catprinter/services"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := services.EnsureDefaultPrinter(db); err != nil {
		utils.ErrorLogger.Printf("Default printer check failed: %v", err)
	}

	printService := services.NewPrintService(db)

	// Background sweep keeps retrying queued orders while printers are down.
	queueMonitor := services.NewQueueMonitor(printService)
	queueMonitor.Start()
	defer queueMonitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, printService)
	r.Use(rateLimiter.RateLimit())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Printer{},
		&models.PrintLog{},
		&models.Setting{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
