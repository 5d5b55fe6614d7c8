package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/catprinter/controllers"
	"github.com/yeremiapane/catprinter/models"
)

func setupPrinterRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	ctrl := controllers.NewPrinterController(db)
	r.POST("/printers", ctrl.CreatePrinter)
	r.GET("/printers", ctrl.GetAllPrinters)
	r.GET("/printers/:printer_id", ctrl.GetPrinterDetail)
	r.PATCH("/printers/:printer_id", ctrl.UpdatePrinter)
	r.DELETE("/printers/:printer_id", ctrl.DeletePrinter)
	r.PATCH("/printers/:printer_id/default", ctrl.SetDefaultPrinter)
	return r
}

func TestCreatePrinter_DefaultsToCloud(t *testing.T) {
	db := setupTestDB(t)
	router := setupPrinterRouter(db)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "Kueche",
		"sn":   "123456789",
	})
	req, _ := http.NewRequest("POST", "/printers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var printer models.Printer
	require.NoError(t, db.First(&printer).Error)
	assert.Equal(t, models.PrinterTypeCloud, printer.Type)
}

func TestSetDefaultPrinter_Endpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupPrinterRouter(db)

	old := models.Printer{Name: "A", IsDefault: true}
	next := models.Printer{Name: "B"}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&next).Error)

	req, _ := http.NewRequest("PATCH", "/printers/"+next.ID+"/default", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Printer{}).Where("is_default = ?", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var reloaded models.Printer
	require.NoError(t, db.First(&reloaded, "id = ?", next.ID).Error)
	assert.True(t, reloaded.IsDefault)
}

func TestUpdateAndDeletePrinter(t *testing.T) {
	db := setupTestDB(t)
	router := setupPrinterRouter(db)

	printer := models.Printer{Name: "A", Type: models.PrinterTypeNetwork, Address: "10.0.0.5"}
	require.NoError(t, db.Create(&printer).Error)

	body, _ := json.Marshal(map[string]interface{}{"category": "kitchen"})
	req, _ := http.NewRequest("PATCH", "/printers/"+printer.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Printer
	require.NoError(t, db.First(&updated, "id = ?", printer.ID).Error)
	assert.Equal(t, "kitchen", updated.Category)

	req, _ = http.NewRequest("DELETE", "/printers/"+printer.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("DELETE", "/printers/"+printer.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
