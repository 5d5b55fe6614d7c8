package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/catprinter/models"
)

// DeliveryResult is the outcome of one transport attempt.
type DeliveryResult struct {
	Success bool
	Message string
}

// PrintTransport delivers rendered ticket content to a physical printer.
type PrintTransport interface {
	Deliver(printer models.Printer, content string) DeliveryResult
}

// TransportFor picks the delivery strategy by printer type. Unknown types
// fall back to the simulated transport so a misconfigured printer never
// blocks an order.
func TransportFor(printer models.Printer, feieyun FeieyunConfig) PrintTransport {
	switch printer.Type {
	case models.PrinterTypeCloud:
		return &CloudTransport{Feieyun: feieyun}
	case models.PrinterTypeNetwork:
		return &NetworkTransport{}
	default:
		return &MockTransport{}
	}
}

// CloudTransport delivers through the Feieyun signed gateway.
type CloudTransport struct {
	Feieyun FeieyunConfig
}

func (t *CloudTransport) Deliver(printer models.Printer, content string) DeliveryResult {
	cfg := t.Feieyun.WithSN(printer.SN)
	if !cfg.IsConfigured() {
		return DeliveryResult{Success: false, Message: ErrConfigIncomplete.Error()}
	}

	resp, err := NewFeieyunService(cfg).PrintMsg(content)
	if err != nil {
		return DeliveryResult{Success: false, Message: err.Error()}
	}
	if resp.Ret != 0 {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("feieyun error %d: %s", resp.Ret, resp.Msg)}
	}
	return DeliveryResult{Success: true, Message: "delivered via cloud gateway"}
}

// NetworkTransport posts plain ticket content straight to a printer on the
// local network.
type NetworkTransport struct {
	client *http.Client
}

func (t *NetworkTransport) Deliver(printer models.Printer, content string) DeliveryResult {
	address := strings.TrimSpace(printer.Address)
	if address == "" {
		return DeliveryResult{Success: false, Message: "printer has no network address"}
	}

	endpoint := address
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "http://" + endpoint
	}
	if !strings.HasSuffix(endpoint, "/print") {
		endpoint = strings.TrimSuffix(endpoint, "/") + "/print"
	}

	client := t.client
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	resp, err := client.Post(endpoint, "text/plain; charset=utf-8", strings.NewReader(content))
	if err != nil {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("network print failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return DeliveryResult{Success: false, Message: fmt.Sprintf("printer returned status %d", resp.StatusCode)}
	}
	return DeliveryResult{Success: true, Message: "delivered to network printer"}
}

// MockTransport simulates a printer for development and tests.
type MockTransport struct {
	Delay time.Duration
}

func (t *MockTransport) Deliver(printer models.Printer, content string) DeliveryResult {
	delay := t.Delay
	if delay == 0 {
		delay = 100 * time.Millisecond
	}
	time.Sleep(delay)
	return DeliveryResult{Success: true, Message: "simulated print ok"}
}
