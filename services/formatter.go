package services

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/catprinter/models"
)

// PrintStyle tunes ticket layout per dialect.
type PrintStyle struct {
	PlainWidth   int
	FeieyunWidth int
}

func DefaultPrintStyle() PrintStyle {
	return PrintStyle{PlainWidth: 32, FeieyunWidth: 48}
}

// MaskOrderID hides the middle of an order id for ticket display. Short ids
// pass through unchanged; the first and last four characters always survive.
// Masking an already-masked id yields the same string.
func MaskOrderID(id string) string {
	if len(id) <= 8 {
		return id
	}
	masked := len(id) - 8
	if masked > 8 {
		masked = 8
	}
	return id[:4] + strings.Repeat("*", masked) + id[len(id)-4:]
}

func formatTicketTime(order models.Order) string {
	return order.CreatedAt.Format("02-01-2006 15:04")
}

// TicketFormatter renders a full ticket for one printer. ticketNo is the
// zero-padded daily order number assigned by the dispatcher.
type TicketFormatter interface {
	Format(order models.Order, items []models.OrderItem, ticketNo string) string
}

// FormatterFor picks the dialect by printer type. Cloud printers understand
// the Feieyun markup; everything else receives plain text.
func FormatterFor(printer models.Printer, style PrintStyle) TicketFormatter {
	if printer.Type == models.PrinterTypeCloud {
		return FeieyunFormatter{Style: style}
	}
	return PlainFormatter{Style: style}
}

// PlainFormatter produces the plain-text dialect used by network and
// simulated printers.
type PlainFormatter struct {
	Style PrintStyle
}

func (f PlainFormatter) Format(order models.Order, items []models.OrderItem, ticketNo string) string {
	divider := strings.Repeat("-", f.Style.PlainWidth)

	lines := []string{
		formatTicketTime(order),
		"Bestellungsnummer: " + ticketNo,
		"Bestellung-ID: " + MaskOrderID(order.ID),
		"Tisch: " + order.TableNo,
		divider,
	}

	for i, item := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, ItemFormatterFor(item).Format(item)...)
	}

	lines = append(lines, divider)
	lines = append(lines, fmt.Sprintf("Summe: %d Artikel", len(items)))
	if order.IsTakeaway {
		lines = append(lines, "To Go")
	}

	return strings.Join(lines, "\n")
}

// FeieyunFormatter produces the tagged markup the Feieyun cloud gateway
// renders on thermal paper.
type FeieyunFormatter struct {
	Style PrintStyle
}

func (f FeieyunFormatter) Format(order models.Order, items []models.OrderItem, ticketNo string) string {
	divider := strings.Repeat("-", f.Style.FeieyunWidth)

	lines := []string{
		formatTicketTime(order),
		"<BOLD>Bestellungsnummer: " + ticketNo + "</BOLD>",
		"Bestellung-ID: " + MaskOrderID(order.ID),
		"<B>Tisch: " + order.TableNo + "</B>",
		divider,
	}

	for i, item := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		itemLines := ItemFormatterFor(item).Format(item)
		for j, line := range itemLines {
			if j == 0 {
				lines = append(lines, "<B>"+line+"</B>")
			} else {
				lines = append(lines, line)
			}
		}
	}

	lines = append(lines, divider)
	lines = append(lines, fmt.Sprintf("Summe: %d Artikel", len(items)))
	if order.IsTakeaway {
		lines = append(lines, "<FS>To Go</FS>")
	}

	return strings.Join(lines, "<BR>")
}
