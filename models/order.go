package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status values
const (
	OrderStatusPending      = "pending"
	OrderStatusPrinted      = "printed"
	OrderStatusPrintFailed  = "print_failed"
	OrderStatusOfflineQueue = "offline_queue"
)

type Order struct {
	ID            string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderNo       string      `gorm:"type:varchar(50);not null;index" json:"order_no"`
	TableNo       string      `gorm:"type:varchar(20)" json:"table_no"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	IsTakeaway    bool        `gorm:"not null;default:false" json:"is_takeaway"`
	TotalPrice    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_price"`
	PrintCount    int         `gorm:"not null;default:0" json:"print_count"`
	LastPrintTime *time.Time  `json:"last_print_time,omitempty"`
	PrintRetries  int         `gorm:"not null;default:0" json:"print_retries"`
	QueuedAt      *time.Time  `gorm:"index" json:"queued_at,omitempty"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
