package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Printer transport types. Anything else falls back to the simulated
// transport so environments without hardware still get a definite result.
const (
	PrinterTypeCloud   = "cloud"
	PrinterTypeNetwork = "network"
	PrinterTypeMock    = "mock"
)

type Printer struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	SN             string     `gorm:"type:varchar(50);index" json:"sn"`
	Name           string     `gorm:"type:varchar(100);not null" json:"name"`
	Type           string     `gorm:"type:varchar(20);not null;default:'cloud'" json:"type"`
	Address        string     `gorm:"type:varchar(100)" json:"address"`
	Status         string     `gorm:"type:varchar(20);not null;default:'offline'" json:"status"`
	IsDefault      bool       `gorm:"not null;default:false" json:"is_default"`
	Category       string     `gorm:"type:varchar(50)" json:"category"`
	LastActiveTime *time.Time `json:"last_active_time,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (p *Printer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
