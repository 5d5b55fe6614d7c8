package services

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/catprinter/models"
)

// ItemFormatter renders one order item as ticket lines. The first line is the
// item header; every following line is indented detail.
type ItemFormatter interface {
	Format(item models.OrderItem) []string
}

// ItemFormatterFor selects the layout for an item. The explicit custom
// dumpling flag wins over everything else, then the food type, then the item
// code prefix.
func ItemFormatterFor(item models.OrderItem) ItemFormatter {
	if item.IsCustomDumpling {
		return CustomDumplingFormatter{}
	}

	foodType := strings.ToLower(strings.TrimSpace(item.FoodType))
	switch foodType {
	case "drink", "beverage":
		return BeverageFormatter{}
	case "set", "set_meal":
		return SetMealFormatter{}
	}

	code := strings.ToUpper(strings.TrimSpace(item.Code))
	switch {
	case strings.HasPrefix(code, "CD"):
		return CustomDumplingFormatter{}
	case strings.HasPrefix(code, "S"):
		return SetMealFormatter{}
	case strings.HasPrefix(code, "D"):
		return BeverageFormatter{}
	}

	return RegularFormatter{}
}

func itemQty(item models.OrderItem) int {
	if item.Qty <= 0 {
		return 1
	}
	return item.Qty
}

func itemHeader(item models.OrderItem) string {
	name := strings.TrimSpace(item.Name)
	code := strings.TrimSpace(item.Code)
	if code != "" {
		return fmt.Sprintf("%dx %s %s", itemQty(item), code, name)
	}
	return fmt.Sprintf("%dx %s", itemQty(item), name)
}

func detailLines(item models.OrderItem) []string {
	detail := strings.TrimSpace(item.Detail)
	if detail == "" {
		return nil
	}
	return []string{"  Hinweis: " + detail}
}

// RegularFormatter is the default single-line layout.
type RegularFormatter struct{}

func (RegularFormatter) Format(item models.OrderItem) []string {
	lines := []string{itemHeader(item)}
	return append(lines, detailLines(item)...)
}

// BeverageFormatter appends the serving volume to the header.
type BeverageFormatter struct{}

func (BeverageFormatter) Format(item models.OrderItem) []string {
	header := itemHeader(item)
	if volume := strings.TrimSpace(item.Volume); volume != "" {
		header += " " + volume
	}
	lines := []string{header}
	for _, sub := range item.ParseSubItems() {
		lines = append(lines, "  +"+sub.Name)
	}
	return append(lines, detailLines(item)...)
}

// CustomDumplingFormatter renders a composable dumpling plate: the fixed
// base count, the selected fillings and a reconciliation line.
type CustomDumplingFormatter struct{}

func (CustomDumplingFormatter) Format(item models.OrderItem) []string {
	lines := []string{itemHeader(item)}

	base := 0
	switch item.DumplingType {
	case models.DumplingTypeFixed10:
		base = 10
		lines = append(lines, "  Feste 10 Dumplings")
	case models.DumplingTypeFixed15:
		base = 15
		lines = append(lines, "  Feste 15 Dumplings")
	}

	selected := 0
	for _, sub := range item.ParseSubItems() {
		qty := sub.Qty
		if qty <= 0 {
			qty = 1
		}
		selected += qty
		lines = append(lines, fmt.Sprintf("  %dx %s", qty, sub.Name))
	}

	if base > 0 {
		lines = append(lines, fmt.Sprintf("  Gesamt: %d Dumplings", base+selected))
	} else if selected > 0 {
		lines = append(lines, fmt.Sprintf("  Gesamt: %d Dumplings", selected))
	}

	return append(lines, detailLines(item)...)
}

// SetMealFormatter lists the bundled components under the header.
type SetMealFormatter struct{}

func (SetMealFormatter) Format(item models.OrderItem) []string {
	lines := []string{itemHeader(item)}
	for _, sub := range item.ParseSubItems() {
		qty := sub.Qty
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, fmt.Sprintf("  %dx %s", qty, sub.Name))
	}
	return append(lines, detailLines(item)...)
}
