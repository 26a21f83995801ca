package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func init() {
	gin.SetMode(gin.TestMode)
}

// testDB opens a private in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Party{},
		&models.InventoryItem{},
		&models.Sale{},
		&models.Purchase{},
		&models.GoldRate{},
		&models.SilverRate{},
		&models.PhysicalCount{},
		&models.PhysicalReport{},
		&models.PhysicalReportCount{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// doJSON runs one handler against a JSON body and returns the recorder.
func doJSON(t *testing.T, fn gin.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	fn(c)
	return w
}

func doGet(t *testing.T, fn gin.HandlerFunc, target string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	fn(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func seedTestItem(t *testing.T, db *gorm.DB, id, name string, weight, pricePerGram float64, qty int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		ID:           id,
		Name:         name,
		Type:         "Ring",
		MetalType:    models.MetalGold,
		Weight:       weight,
		Purity:       "22K",
		PricePerGram: pricePerGram,
		Quantity:     qty,
		TotalValue:   weight * pricePerGram * float64(qty),
		CreatedAt:    time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}
