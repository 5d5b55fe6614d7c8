package services

import (
	"time"

	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
)

// OfflineQueueReport summarizes one sweep over the offline queue.
type OfflineQueueReport struct {
	Scanned   int `json:"scanned"`
	Printed   int `json:"printed"`
	Retried   int `json:"retried"`
	GivenUp   int `json:"given_up"`
	Remaining int `json:"remaining"`
}

// ProcessOfflineQueue retries every queued order against the default
// printer, oldest first. Orders whose retry counter reaches the limit are
// marked print_failed and never picked up again.
func (s *PrintService) ProcessOfflineQueue() (*OfflineQueueReport, error) {
	report := &OfflineQueueReport{}

	var queued []models.Order
	err := s.DB.Preload("Items").
		Where("status = ? AND print_retries < ?", models.OrderStatusOfflineQueue, s.MaxRetries).
		Order("queued_at ASC").
		Find(&queued).Error
	if err != nil {
		return nil, err
	}
	report.Scanned = len(queued)
	if len(queued) == 0 {
		return report, nil
	}

	printer, err := FindDefaultPrinter(s.DB)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		utils.ErrorLogger.Printf("Offline queue has %d orders but no default printer is configured", len(queued))
		report.Remaining = len(queued)
		return report, nil
	}

	feieyun := ResolveFeieyunConfig(s.DB)
	ticketNo := s.dailyTicketNumber()

	for _, order := range queued {
		content := FormatterFor(*printer, s.Style).Format(order, order.Items, ticketNo)
		result := TransportFor(*printer, feieyun).Deliver(*printer, content)

		if result.Success {
			s.writeLog(order.ID, &printer.ID, models.PrintStatusSuccess, result.Message, models.PrintPriorityNormal)
			if err := s.markPrinted(&order); err != nil {
				utils.ErrorLogger.Printf("Failed to mark queued order %s printed: %v", order.ID, err)
			}
			report.Printed++
			continue
		}

		s.writeLog(order.ID, &printer.ID, models.PrintStatusFailed, result.Message, models.PrintPriorityNormal)
		retries := order.PrintRetries + 1
		updates := map[string]interface{}{"print_retries": retries}
		if retries >= s.MaxRetries {
			updates["status"] = models.OrderStatusPrintFailed
			utils.ErrorLogger.Printf("Order %s exhausted %d print retries, giving up", order.ID, s.MaxRetries)
			report.GivenUp++
		} else {
			report.Retried++
			report.Remaining++
		}
		if err := s.DB.Model(&order).Updates(updates).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to update retries for order %s: %v", order.ID, err)
		}
	}

	if report.Printed > 0 || report.GivenUp > 0 {
		utils.InfoLogger.Printf("Offline queue sweep: %d printed, %d retried, %d given up",
			report.Printed, report.Retried, report.GivenUp)
	}
	return report, nil
}

// QueueMonitor periodically sweeps the offline queue in the background.
type QueueMonitor struct {
	Service  *PrintService
	Interval time.Duration
	StopChan chan struct{}
}

func NewQueueMonitor(svc *PrintService) *QueueMonitor {
	return &QueueMonitor{
		Service:  svc,
		Interval: time.Duration(envInt("PRINT_QUEUE_INTERVAL_SECONDS", 30)) * time.Second,
		StopChan: make(chan struct{}),
	}
}

func (m *QueueMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := m.Service.ProcessOfflineQueue(); err != nil {
					utils.ErrorLogger.Printf("Offline queue sweep failed: %v", err)
				}
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *QueueMonitor) Stop() {
	close(m.StopChan)
}
