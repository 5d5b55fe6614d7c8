package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/services"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	DB      *gorm.DB
	Printer *services.PrintService
}

func NewOrderController(db *gorm.DB, printer *services.PrintService) *OrderController {
	return &OrderController{DB: db, Printer: printer}
}

// CreateOrder stores a new order and dispatches the kitchen ticket. Printer
// trouble never fails the order; the print result rides along in the
// response so the client can surface it.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableNo    string  `json:"table_no" binding:"required"`
		IsTakeaway bool    `json:"is_takeaway"`
		TotalPrice float64 `json:"total_price"`
		Items      []struct {
			Name             string  `json:"name" binding:"required"`
			Code             string  `json:"code"`
			Qty              int     `json:"qty"`
			Price            float64 `json:"price"`
			Detail           string  `json:"detail"`
			FoodType         string  `json:"food_type"`
			Volume           string  `json:"volume"`
			IsCustomDumpling bool    `json:"is_custom_dumpling"`
			DumplingType     string  `json:"dumpling_type"`
			SubItems         string  `json:"sub_items"`
		} `json:"items" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order := models.Order{
		OrderNo:    fmt.Sprintf("ORD-%s", time.Now().Format("20060102-150405")),
		TableNo:    req.TableNo,
		IsTakeaway: req.IsTakeaway,
		TotalPrice: req.TotalPrice,
		Status:     models.OrderStatusPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			Name:             item.Name,
			Code:             item.Code,
			Qty:              item.Qty,
			Price:            item.Price,
			Detail:           item.Detail,
			FoodType:         item.FoodType,
			Volume:           item.Volume,
			IsCustomDumpling: item.IsCustomDumpling,
			DumplingType:     item.DumplingType,
			SubItems:         item.SubItems,
		})
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	printResult := oc.Printer.DispatchPrint(order.ID, "", models.PrintPriorityNormal)

	utils.InfoLogger.Printf("Order %s created for table %s (%d items, printed=%v)",
		order.ID, order.TableNo, len(order.Items), printResult.Success && !printResult.Queued)
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", gin.H{
		"order": order,
		"print": printResult,
	})
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders fetched successfully", orders)
}

func (oc *OrderController) GetOrderDetail(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order fetched successfully", order)
}
