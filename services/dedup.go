package services

import (
	"os"
	"strconv"
	"time"

	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

// DedupConfig holds the sliding windows used to suppress duplicate prints.
type DedupConfig struct {
	ShortWindow time.Duration
	LongWindow  time.Duration
}

func DedupConfigFromEnv() DedupConfig {
	return DedupConfig{
		ShortWindow: time.Duration(envInt("PRINT_DEDUP_SHORT_SECONDS", 15)) * time.Second,
		LongWindow:  time.Duration(envInt("PRINT_DEDUP_LONG_SECONDS", 60)) * time.Second,
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// DedupDecision is the arbiter's verdict for one dispatch request.
type DedupDecision struct {
	Allowed bool
	Reason  string
}

// CheckDuplicate decides whether a dispatch may proceed. Inside the short
// window every request is suppressed. Inside the long window only a high
// priority request passes, and only if no high priority print already
// happened there. The check is advisory: a failing log query allows the
// print rather than blocking the kitchen.
func CheckDuplicate(db *gorm.DB, cfg DedupConfig, orderID, priority string, now time.Time) DedupDecision {
	var recent []models.PrintLog
	err := db.Where("order_id = ? AND status = ? AND created_at >= ?",
		orderID, models.PrintStatusSuccess, now.Add(-cfg.LongWindow)).
		Order("created_at DESC").
		Find(&recent).Error
	if err != nil {
		utils.ErrorLogger.Printf("Dedup check failed for order %s, allowing print: %v", orderID, err)
		return DedupDecision{Allowed: true, Reason: "dedup check unavailable"}
	}

	if len(recent) == 0 {
		return DedupDecision{Allowed: true}
	}

	shortCutoff := now.Add(-cfg.ShortWindow)
	for _, entry := range recent {
		if !entry.CreatedAt.Before(shortCutoff) {
			return DedupDecision{Allowed: false, Reason: "order was printed moments ago"}
		}
	}

	if priority != models.PrintPriorityHigh {
		return DedupDecision{Allowed: false, Reason: "order already printed recently"}
	}

	for _, entry := range recent {
		if entry.Priority == models.PrintPriorityHigh {
			return DedupDecision{Allowed: false, Reason: "order already reprinted recently"}
		}
	}

	return DedupDecision{Allowed: true, Reason: "high priority override"}
}
