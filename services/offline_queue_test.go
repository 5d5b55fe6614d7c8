package services

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/catprinter/models"
	"gorm.io/gorm"
)

func queueOrder(t *testing.T, db *gorm.DB, queuedAt time.Time) models.Order {
	t.Helper()
	order := models.Order{
		TableNo: "T1",
		Status:  models.OrderStatusOfflineQueue,
		Items:   []models.OrderItem{{Name: "Pommes", Qty: 1}},
	}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Model(&order).Update("queued_at", queuedAt).Error)
	return order
}

func TestProcessOfflineQueue_RetryUntilTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPrintService(db)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	require.NoError(t, db.Create(&models.Printer{
		Name: "Theke", Type: models.PrinterTypeNetwork, Address: server.URL, IsDefault: true,
	}).Error)

	order := queueOrder(t, db, time.Now())

	for attempt := 1; attempt <= svc.MaxRetries; attempt++ {
		report, err := svc.ProcessOfflineQueue()
		require.NoError(t, err)
		assert.Equal(t, 1, report.Scanned, "attempt %d", attempt)

		var updated models.Order
		require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
		assert.Equal(t, attempt, updated.PrintRetries)
		if attempt < svc.MaxRetries {
			assert.Equal(t, models.OrderStatusOfflineQueue, updated.Status)
		} else {
			assert.Equal(t, models.OrderStatusPrintFailed, updated.Status, "retry limit reached")
		}
	}

	// Terminal orders never come back.
	report, err := svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
}

func TestProcessOfflineQueue_RecoversWhenPrinterReturns(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPrintService(db)

	healthy := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	require.NoError(t, db.Create(&models.Printer{
		Name: "Theke", Type: models.PrinterTypeNetwork, Address: server.URL, IsDefault: true,
	}).Error)

	order := queueOrder(t, db, time.Now())

	report, err := svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Retried)

	healthy = true
	report, err = svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Printed)

	var updated models.Order
	require.NoError(t, db.First(&updated, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusPrinted, updated.Status)
	assert.Equal(t, 0, updated.PrintRetries)
	assert.Nil(t, updated.QueuedAt)
}

func TestProcessOfflineQueue_OldestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPrintService(db)

	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(body))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	require.NoError(t, db.Create(&models.Printer{
		Name: "Theke", Type: models.PrinterTypeNetwork, Address: server.URL, IsDefault: true,
	}).Error)

	older := queueOrder(t, db, time.Now().Add(-2*time.Hour))
	newer := queueOrder(t, db, time.Now().Add(-1*time.Hour))

	report, err := svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Printed)

	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], MaskOrderID(older.ID), "oldest queued order prints first")
	assert.Contains(t, bodies[1], MaskOrderID(newer.ID))
}

func TestProcessOfflineQueue_NoDefaultPrinter(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPrintService(db)

	queueOrder(t, db, time.Now())

	report, err := svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Printed)
	assert.Equal(t, 1, report.Remaining)
}

func TestProcessOfflineQueue_EmptyQueue(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPrintService(db)

	report, err := svc.ProcessOfflineQueue()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Scanned)
}
