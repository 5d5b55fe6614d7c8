package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

// PrintService runs the dispatch pipeline: dedup, routing, formatting,
// transport and logging. One instance is shared by the HTTP layer and the
// offline queue monitor.
type PrintService struct {
	DB         *gorm.DB
	MaxRetries int
	Dedup      DedupConfig
	Classifier ClassifierConfig
	Style      PrintStyle
}

func NewPrintService(db *gorm.DB) *PrintService {
	return &PrintService{
		DB:         db,
		MaxRetries: envInt("PRINT_RETRY_COUNT", 3),
		Dedup:      DedupConfigFromEnv(),
		Classifier: DefaultClassifierConfig(),
		Style:      DefaultPrintStyle(),
	}
}

// PrintResult is what every dispatch returns. The call never panics and
// never returns a Go error; failures are encoded here so callers can always
// answer the client.
type PrintResult struct {
	Success   bool   `json:"success"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Queued    bool   `json:"queued,omitempty"`
	Message   string `json:"message"`
}

type printJob struct {
	printer models.Printer
	items   []models.OrderItem
}

// DispatchPrint prints one order. printerID may be empty or "default" to let
// category routing pick the targets. priority high bypasses the long dedup
// window once.
func (s *PrintService) DispatchPrint(orderID, printerID, priority string) PrintResult {
	if priority != models.PrintPriorityHigh {
		priority = models.PrintPriorityNormal
	}

	decision := CheckDuplicate(s.DB, s.Dedup, orderID, priority, time.Now())
	if !decision.Allowed {
		utils.InfoLogger.Printf("Suppressed duplicate print for order %s: %s", orderID, decision.Reason)
		return PrintResult{Success: true, Duplicate: true, Message: decision.Reason}
	}

	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		utils.ErrorLogger.Printf("Print dispatch failed to load order %s: %v", orderID, err)
		return PrintResult{Success: false, Message: "order not found"}
	}

	jobs, unrouted, err := s.buildJobs(&order, printerID)
	if err != nil {
		s.writeLog(order.ID, nil, models.PrintStatusFailed, err.Error(), priority)
		return PrintResult{Success: false, Message: err.Error()}
	}

	if len(jobs) == 0 {
		s.writeLog(order.ID, nil, models.PrintStatusFailed, ErrNoPrinterResolved.Error(), priority)
		if qErr := s.enqueueOffline(&order); qErr != nil {
			utils.ErrorLogger.Printf("Failed to queue order %s: %v", order.ID, qErr)
			return PrintResult{Success: false, Message: "no printer available and queueing failed"}
		}
		return PrintResult{Success: true, Queued: true, Message: "no printer available, order queued for offline printing"}
	}

	feieyun := ResolveFeieyunConfig(s.DB)
	for _, job := range jobs {
		// Missing credentials are an operator mistake; report before any
		// network call instead of burning retries on it.
		if job.printer.Type == models.PrinterTypeCloud && !feieyun.WithSN(job.printer.SN).IsConfigured() {
			s.writeLog(order.ID, &job.printer.ID, models.PrintStatusFailed, ErrConfigIncomplete.Error(), priority)
			return PrintResult{Success: false, Message: ErrConfigIncomplete.Error()}
		}
	}

	ticketNo := s.dailyTicketNumber()
	failures := 0
	for _, job := range jobs {
		content := FormatterFor(job.printer, s.Style).Format(order, job.items, ticketNo)
		result := TransportFor(job.printer, feieyun).Deliver(job.printer, content)

		status := models.PrintStatusSuccess
		if !result.Success {
			status = models.PrintStatusFailed
			failures++
			utils.ErrorLogger.Printf("Print delivery failed for order %s on printer %s: %s",
				order.ID, job.printer.Name, result.Message)
		}
		s.writeLog(order.ID, &job.printer.ID, status, result.Message, priority)
	}

	if failures > 0 || unrouted > 0 {
		if qErr := s.enqueueOffline(&order); qErr != nil {
			utils.ErrorLogger.Printf("Failed to queue order %s: %v", order.ID, qErr)
			return PrintResult{Success: false, Message: "print failed and queueing failed"}
		}
		return PrintResult{Success: true, Queued: true, Message: "print incomplete, order queued for offline printing"}
	}

	if err := s.markPrinted(&order); err != nil {
		utils.ErrorLogger.Printf("Failed to update order %s after print: %v", order.ID, err)
	}
	return PrintResult{Success: true, Message: "order printed"}
}

// buildJobs resolves which printers receive which items. unrouted counts the
// item groups no printer could serve.
func (s *PrintService) buildJobs(order *models.Order, printerID string) ([]printJob, int, error) {
	if printerID != "" && printerID != "default" {
		var printer models.Printer
		if err := s.DB.First(&printer, "id = ?", printerID).Error; err != nil {
			return nil, 0, fmt.Errorf("printer %s not found", printerID)
		}
		return []printJob{{printer: printer, items: order.Items}}, 0, nil
	}

	var printers []models.Printer
	if err := s.DB.Find(&printers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to load printers: %v", err)
	}

	var jobs []printJob
	unrouted := 0
	for group, items := range s.Classifier.ClassifyItems(order.Items) {
		targets := s.Classifier.ResolvePrinters(group, printers)
		if len(targets) == 0 {
			utils.ErrorLogger.Printf("No printer for group %s of order %s", group, order.ID)
			unrouted++
			continue
		}
		for _, printer := range targets {
			jobs = append(jobs, printJob{printer: printer, items: items})
		}
	}
	return jobs, unrouted, nil
}

// dailyTicketNumber is the zero-padded count of orders created today,
// printed on the ticket so the kitchen can call out short numbers.
func (s *PrintService) dailyTicketNumber() string {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to count today's orders: %v", err)
		return "000"
	}
	return fmt.Sprintf("%03d", count%1000)
}

func (s *PrintService) writeLog(orderID string, printerID *string, status, message, priority string) {
	entry := models.PrintLog{
		OrderID:   orderID,
		PrinterID: printerID,
		Status:    status,
		Message:   message,
		Priority:  priority,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to write print log for order %s: %v", orderID, err)
	}
}

func (s *PrintService) markPrinted(order *models.Order) error {
	now := time.Now()
	return s.DB.Model(order).Updates(map[string]interface{}{
		"status":          models.OrderStatusPrinted,
		"print_count":     gorm.Expr("print_count + 1"),
		"last_print_time": now,
		"print_retries":   0,
		"queued_at":       nil,
	}).Error
}

func (s *PrintService) enqueueOffline(order *models.Order) error {
	utils.InfoLogger.Printf("Queueing order %s for offline printing", order.ID)
	return s.DB.Model(order).Updates(map[string]interface{}{
		"status":        models.OrderStatusOfflineQueue,
		"queued_at":     time.Now(),
		"print_retries": 0,
	}).Error
}

// PrintStatusReport is the operator view over the dispatch subsystem.
type PrintStatusReport struct {
	QueueDepth     int64           `json:"queue_depth"`
	FailedOrders   int64           `json:"failed_orders"`
	LogsTotal      int64           `json:"logs_total"`
	LogsSuccess    int64           `json:"logs_success"`
	LogsFailed     int64           `json:"logs_failed"`
	SuccessRate    float64         `json:"success_rate"`
	MaxRetries     int             `json:"max_retries"`
	DefaultPrinter *models.Printer `json:"default_printer,omitempty"`
}

// GetPrintStatus aggregates queue depth, log counters over the last 24
// hours and the current default printer.
func (s *PrintService) GetPrintStatus() (*PrintStatusReport, error) {
	report := &PrintStatusReport{MaxRetries: s.MaxRetries}
	since := time.Now().Add(-24 * time.Hour)

	if err := s.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusOfflineQueue).
		Count(&report.QueueDepth).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPrintFailed).
		Count(&report.FailedOrders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.PrintLog{}).
		Where("created_at >= ?", since).
		Count(&report.LogsTotal).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.PrintLog{}).
		Where("status = ? AND created_at >= ?", models.PrintStatusSuccess, since).
		Count(&report.LogsSuccess).Error; err != nil {
		return nil, err
	}
	report.LogsFailed = report.LogsTotal - report.LogsSuccess
	if report.LogsTotal > 0 {
		report.SuccessRate = float64(report.LogsSuccess) / float64(report.LogsTotal)
	}

	defaultPrinter, err := FindDefaultPrinter(s.DB)
	if err != nil {
		return nil, err
	}
	report.DefaultPrinter = defaultPrinter

	return report, nil
}
