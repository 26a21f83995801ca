package ledger

import (
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

// testDB opens a private in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
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
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedParty(t *testing.T, db *gorm.DB, id, name, role string) *models.Party {
	t.Helper()
	p := &models.Party{ID: id, Name: name, Role: role, CreatedAt: time.Now()}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed party: %v", err)
	}
	return p
}

func seedItem(t *testing.T, db *gorm.DB, id, name string, weight, pricePerGram float64, qty int) *models.InventoryItem {
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

func getItem(t *testing.T, db *gorm.DB, id string) *models.InventoryItem {
	t.Helper()
	var item models.InventoryItem
	if err := db.Where("id = ?", id).First(&item).Error; err != nil {
		t.Fatalf("load item %s: %v", id, err)
	}
	return &item
}

// checkValueInvariant asserts totalValue == weight * pricePerGram * quantity
// for every remaining inventory item.
func checkValueInvariant(t *testing.T, db *gorm.DB) {
	t.Helper()
	var items []models.InventoryItem
	if err := db.Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	for _, item := range items {
		want := item.Weight * item.PricePerGram * float64(item.Quantity)
		if math.Abs(item.TotalValue-want) > 1e-9 {
			t.Errorf("item %s: totalValue = %f, want %f", item.ID, item.TotalValue, want)
		}
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
