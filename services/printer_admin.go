package services

import (
	"errors"

	"github.com/yeremiapane/catprinter/models"
	"github.com/yeremiapane/catprinter/utils"
	"gorm.io/gorm"
)

// FindDefaultPrinter returns the single default printer, repairing the
// invariant if several rows carry the flag. Returns nil without error when
// no default exists.
func FindDefaultPrinter(db *gorm.DB) (*models.Printer, error) {
	var defaults []models.Printer
	if err := db.Where("is_default = ?", true).Order("updated_at DESC").Find(&defaults).Error; err != nil {
		return nil, err
	}

	if len(defaults) == 0 {
		return nil, nil
	}

	if len(defaults) > 1 {
		utils.ErrorLogger.Printf("Found %d default printers, keeping %s", len(defaults), defaults[0].ID)
		var extraIDs []string
		for _, p := range defaults[1:] {
			extraIDs = append(extraIDs, p.ID)
		}
		if err := db.Model(&models.Printer{}).
			Where("id IN ?", extraIDs).
			Update("is_default", false).Error; err != nil {
			return nil, err
		}
	}

	return &defaults[0], nil
}

// SetDefaultPrinter makes one printer the default and clears the flag
// everywhere else in a single transaction.
func SetDefaultPrinter(db *gorm.DB, printerID string) (*models.Printer, error) {
	var printer models.Printer
	if err := db.First(&printer, "id = ?", printerID).Error; err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Printer{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&printer).Update("is_default", true).Error
	})
	if err != nil {
		return nil, err
	}

	printer.IsDefault = true
	return &printer, nil
}

// EnsureDefaultPrinter promotes the oldest printer to default when none is
// flagged. Used at startup so routing always has a fallback.
func EnsureDefaultPrinter(db *gorm.DB) error {
	current, err := FindDefaultPrinter(db)
	if err != nil {
		return err
	}
	if current != nil {
		return nil
	}

	var oldest models.Printer
	if err := db.Order("created_at ASC").First(&oldest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	utils.InfoLogger.Printf("No default printer configured, promoting %s (%s)", oldest.Name, oldest.ID)
	return db.Model(&oldest).Update("is_default", true).Error
}
