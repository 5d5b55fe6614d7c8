package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dumpling portion types for build-your-own dumpling items
const (
	DumplingTypeFixed10 = "fixed_10"
	DumplingTypeFixed15 = "fixed_15"
	DumplingTypeCustom  = "custom"
)

type OrderItem struct {
	ID      string `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID string `gorm:"type:varchar(36);not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order            Order   `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name             string  `gorm:"type:varchar(255);not null" json:"name"`
	Code             string  `gorm:"type:varchar(20)" json:"code"`
	Qty              int     `gorm:"not null;default:1" json:"qty"`
	Price            float64 `gorm:"type:decimal(10,2)" json:"price"`
	Detail           string  `gorm:"type:text" json:"detail"`
	FoodType         string  `gorm:"type:varchar(50)" json:"food_type"`
	Volume           string  `gorm:"type:varchar(20)" json:"volume"`
	IsCustomDumpling bool    `gorm:"not null;default:false" json:"is_custom_dumpling"`
	DumplingType     string  `gorm:"type:varchar(20)" json:"dumpling_type"`
	// SubItems holds a JSON array of {name, qty} pairs (dumpling fillings,
	// beverage add-ons, set meal components).
	SubItems  string    `gorm:"type:text" json:"sub_items"`
	DishID    *string   `gorm:"type:varchar(36)" json:"dish_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

type SubItem struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

// ParseSubItems decodes the SubItems JSON column. Malformed or empty data
// yields an empty slice, never an error; upstream data quality problems are
// absorbed here.
func (oi *OrderItem) ParseSubItems() []SubItem {
	if oi.SubItems == "" {
		return nil
	}
	var subs []SubItem
	if err := json.Unmarshal([]byte(oi.SubItems), &subs); err != nil {
		return nil
	}
	return subs
}
