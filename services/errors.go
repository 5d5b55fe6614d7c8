package services

import "errors"

var (
	// ErrConfigIncomplete is returned when a cloud printer is addressed but
	// the Feieyun credentials are missing. Never queued for retry.
	ErrConfigIncomplete = errors.New("cloud print configuration incomplete")

	// ErrNoPrinterResolved is returned when routing finds no printer for any
	// item group and no default printer exists.
	ErrNoPrinterResolved = errors.New("no printer resolved for order")
)
