package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

type PrintLogController struct {
	DB *gorm.DB
}

func NewPrintLogController(db *gorm.DB) *PrintLogController {
	return &PrintLogController{DB: db}
}

// GetPrintLogs lists print attempts, newest first. Supports order_id,
// status and limit query filters.
func (plc *PrintLogController) GetPrintLogs(c *gin.Context) {
	query := plc.DB.Model(&models.PrintLog{}).Order("created_at DESC")

	if orderID := c.Query("order_id"); orderID != "" {
		query = query.Where("order_id = ?", orderID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	var logs []models.PrintLog
	if err := query.Limit(limit).Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Print logs fetched successfully", logs)
}

// GetDailyStats aggregates print attempts for one day (date=yyyy-mm-dd,
// default today).
func (plc *PrintLogController) GetDailyStats(c *gin.Context) {
	date := c.Query("date")
	var rows []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	query := plc.DB.Model(&models.PrintLog{}).
		Select("status, COUNT(*) as count").
		Where("DATE(created_at) = ?", date).
		Group("status")

	if err := query.Scan(&rows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Daily print stats fetched successfully", rows)
}
