package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catprinter/controllers"
	"github.com/yeremiapane/catprinter/middlewares"
	"github.com/yeremiapane/catprinter/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, printer *services.PrintService) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	orderController := controllers.NewOrderController(db, printer)
	printController := controllers.NewPrintController(db, printer)
	printerController := controllers.NewPrinterController(db)
	printLogController := controllers.NewPrintLogController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public group: order intake from the customer-facing frontend.
	public := r.Group("/api/v1")
	{
		public.POST("/orders", orderController.CreateOrder)
		public.GET("/orders", orderController.GetAllOrders)
		public.GET("/orders/:order_id", orderController.GetOrderDetail)
	}

	// Admin group: dispatch control and printer management.
	admin := r.Group("/api/v1/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.POST("/print", middlewares.NewStrictRateLimiter(), printController.PrintOrder)
		admin.POST("/print/offline-queue", printController.ProcessOfflineQueue)
		admin.GET("/print/status", printController.GetPrintStatus)

		admin.POST("/printers", printerController.CreatePrinter)
		admin.GET("/printers", printerController.GetAllPrinters)
		admin.GET("/printers/:printer_id", printerController.GetPrinterDetail)
		admin.PATCH("/printers/:printer_id", printerController.UpdatePrinter)
		admin.DELETE("/printers/:printer_id", printerController.DeletePrinter)
		admin.PATCH("/printers/:printer_id/default", printerController.SetDefaultPrinter)
		admin.GET("/printers/:printer_id/status", printerController.CheckPrinterStatus)

		admin.GET("/print-logs", printLogController.GetPrintLogs)
		admin.GET("/print-logs/stats", printLogController.GetDailyStats)
	}

	return r
}
