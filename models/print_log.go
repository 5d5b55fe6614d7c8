package models

import "time"

// Print attempt status values
const (
	PrintStatusSuccess = "success"
	PrintStatusFailed  = "failed"
)

// Print request priorities
const (
	PrintPriorityNormal = "normal"
	PrintPriorityHigh   = "high"
)

// PrintLog is the append-only record of every print attempt. Rows are never
// updated or deleted; the dedup check reads them as a sliding time window.
type PrintLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   string    `gorm:"type:varchar(36);not null;index" json:"order_id"`
	PrinterID *string   `gorm:"type:varchar(36);index" json:"printer_id,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
	Priority  string    `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
