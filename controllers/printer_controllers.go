package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/services"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

type PrinterController struct {
	DB *gorm.DB
}

func NewPrinterController(db *gorm.DB) *PrinterController {
	return &PrinterController{DB: db}
}

func (pc *PrinterController) CreatePrinter(c *gin.Context) {
	var req struct {
		SN        string `json:"sn"`
		Name      string `json:"name" binding:"required"`
		Type      string `json:"type"`
		Address   string `json:"address"`
		Category  string `json:"category"`
		IsDefault bool   `json:"is_default"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	printer := models.Printer{
		SN:        req.SN,
		Name:      req.Name,
		Type:      req.Type,
		Address:   req.Address,
		Category:  req.Category,
		IsDefault: req.IsDefault,
	}
	if printer.Type == "" {
		printer.Type = models.PrinterTypeCloud
	}

	if err := pc.DB.Create(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if printer.IsDefault {
		if _, err := services.SetDefaultPrinter(pc.DB, printer.ID); err != nil {
			utils.ErrorLogger.Printf("Failed to enforce single default after create: %v", err)
		}
	}

	utils.InfoLogger.Printf("Printer created: %s (type=%s, category=%s)", printer.Name, printer.Type, printer.Category)
	utils.RespondJSON(c, http.StatusCreated, "Printer created successfully", printer)
}

func (pc *PrinterController) GetAllPrinters(c *gin.Context) {
	var printers []models.Printer
	if err := pc.DB.Order("created_at ASC").Find(&printers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printers fetched successfully", printers)
}

func (pc *PrinterController) GetPrinterDetail(c *gin.Context) {
	var printer models.Printer
	if err := pc.DB.First(&printer, "id = ?", c.Param("printer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printer fetched successfully", printer)
}

func (pc *PrinterController) UpdatePrinter(c *gin.Context) {
	var printer models.Printer
	if err := pc.DB.First(&printer, "id = ?", c.Param("printer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		SN       *string `json:"sn"`
		Name     *string `json:"name"`
		Type     *string `json:"type"`
		Address  *string `json:"address"`
		Category *string `json:"category"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.SN != nil {
		updates["sn"] = *req.SN
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := pc.DB.Model(&printer).Updates(updates).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Printer updated successfully", printer)
}

func (pc *PrinterController) DeletePrinter(c *gin.Context) {
	result := pc.DB.Delete(&models.Printer{}, "id = ?", c.Param("printer_id"))
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondJSON(c, http.StatusNotFound, "Printer not found", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printer deleted successfully", nil)
}

// SetDefaultPrinter flags one printer as the routing fallback. The service
// clears the flag on every other printer in the same transaction.
func (pc *PrinterController) SetDefaultPrinter(c *gin.Context) {
	printer, err := services.SetDefaultPrinter(pc.DB, c.Param("printer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.InfoLogger.Printf("Default printer is now %s (%s)", printer.Name, printer.ID)
	utils.RespondJSON(c, http.StatusOK, "Default printer updated", printer)
}

// CheckPrinterStatus asks the cloud gateway whether the printer is online.
// Only meaningful for cloud printers.
func (pc *PrinterController) CheckPrinterStatus(c *gin.Context) {
	var printer models.Printer
	if err := pc.DB.First(&printer, "id = ?", c.Param("printer_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if printer.Type != models.PrinterTypeCloud {
		utils.RespondJSON(c, http.StatusOK, "Printer status", gin.H{
			"printer_id": printer.ID,
			"status":     printer.Status,
		})
		return
	}

	cfg := services.ResolveFeieyunConfig(pc.DB).WithSN(printer.SN)
	svc := services.NewFeieyunService(cfg)
	resp, err := svc.QueryPrinterStatus()
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	payload := gin.H{
		"printer_id": printer.ID,
		"gateway":    resp,
	}
	// With ?date=yyyy-MM-dd the gateway-side print counts for that day are
	// included, useful to reconcile against the local print log.
	if date := c.Query("date"); date != "" {
		if orders, err := svc.QueryOrderInfoByDate(date); err == nil {
			payload["orders"] = orders
		} else {
			utils.ErrorLogger.Printf("Gateway order query failed for printer %s: %v", printer.ID, err)
		}
	}
	utils.RespondJSON(c, http.StatusOK, "Printer status", payload)
}
