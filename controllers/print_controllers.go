package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catprinter/services"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

type PrintController struct {
	DB      *gorm.DB
	Printer *services.PrintService
}

func NewPrintController(db *gorm.DB, printer *services.PrintService) *PrintController {
	return &PrintController{DB: db, Printer: printer}
}

// PrintOrder dispatches a print for an existing order. The UI sends high
// priority for manual reprints so they can pass the dedup long window once.
func (pc *PrintController) PrintOrder(c *gin.Context) {
	var req struct {
		OrderID   string `json:"order_id" binding:"required"`
		PrinterID string `json:"printer_id"`
		Priority  string `json:"priority"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := pc.Printer.DispatchPrint(req.OrderID, req.PrinterID, req.Priority)

	code := http.StatusOK
	if !result.Success {
		code = http.StatusBadGateway
	}
	utils.RespondJSON(c, code, result.Message, result)
}

// ProcessOfflineQueue triggers a sweep outside the background schedule.
func (pc *PrintController) ProcessOfflineQueue(c *gin.Context) {
	report, err := pc.Printer.ProcessOfflineQueue()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offline queue processed", report)
}

// GetPrintStatus reports queue depth, log counters and the default printer.
func (pc *PrintController) GetPrintStatus(c *gin.Context) {
	report, err := pc.Printer.GetPrintStatus()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Print status fetched successfully", report)
}
