package reconcile

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:reconcile_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.InventoryItem{},
		&models.PhysicalCount{},
		&models.PhysicalReport{},
		&models.PhysicalReportCount{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedItem(t *testing.T, db *gorm.DB, id, name string, qty int) {
	t.Helper()
	item := &models.InventoryItem{
		ID: id, Name: name, MetalType: models.MetalGold,
		Weight: 10, PricePerGram: 150000, Quantity: qty,
		TotalValue: 10 * 150000 * float64(qty), CreatedAt: time.Now(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func scanTimes(t *testing.T, db *gorm.DB, itemID string, n int) *models.PhysicalCount {
	t.Helper()
	var count *models.PhysicalCount
	for i := 0; i < n; i++ {
		var err error
		count, _, err = RecordScan(db, itemID)
		if err != nil {
			t.Fatalf("scan %d: %v", i+1, err)
		}
	}
	return count
}

func TestRecordScan_Accumulation(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, "item-1", "Gold Ring", 5)

	steps := []struct {
		scans       int // cumulative
		wantScanned int
		wantDisc    int
	}{
		{3, 3, -2},
		{5, 5, 0},
		{6, 6, 1},
	}

	done := 0
	for _, step := range steps {
		count := scanTimes(t, db, "item-1", step.scans-done)
		done = step.scans
		if count.ScannedQuantity != step.wantScanned || count.Discrepancy != step.wantDisc {
			t.Errorf("after %d scans: (scanned, discrepancy) = (%d, %d), want (%d, %d)",
				step.scans, count.ScannedQuantity, count.Discrepancy, step.wantScanned, step.wantDisc)
		}
	}
}

func TestRecordScan_ExpectedSnapshotAtFirstScan(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, "item-1", "Gold Ring", 5)

	scanTimes(t, db, "item-1", 1)

	// ledger changes after the first scan do not touch the snapshot
	db.Model(&models.InventoryItem{}).Where("id = ?", "item-1").Update("quantity", 9)

	count := scanTimes(t, db, "item-1", 1)
	if count.ExpectedQuantity != 5 {
		t.Errorf("expectedQuantity = %d, want snapshot 5", count.ExpectedQuantity)
	}
	if count.Discrepancy != -3 {
		t.Errorf("discrepancy = %d, want -3", count.Discrepancy)
	}
}

func TestRecordScan_ItemNotFound(t *testing.T) {
	db := testDB(t)

	_, _, err := RecordScan(db, "ghost")
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("error = %v, want ErrItemNotFound", err)
	}

	var n int64
	db.Model(&models.PhysicalCount{}).Count(&n)
	if n != 0 {
		t.Errorf("counts written = %d, want 0", n)
	}
}

func TestGenerateReport(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, "item-1", "Gold Ring", 5)
	seedItem(t, db, "item-2", "Silver Payal", 2)

	scanTimes(t, db, "item-1", 5) // matches
	scanTimes(t, db, "item-2", 3) // over by one

	report, err := GenerateReport(db, "Dashain stock take")
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if report.Name != "Dashain stock take" {
		t.Errorf("name = %q", report.Name)
	}
	if report.TotalItemsScanned != 8 || report.TotalItemsExpected != 7 {
		t.Errorf("totals = (%d, %d), want (8, 7)", report.TotalItemsScanned, report.TotalItemsExpected)
	}
	if report.ItemsWithDiscrepancy != 1 {
		t.Errorf("itemsWithDiscrepancy = %d, want 1", report.ItemsWithDiscrepancy)
	}
	if len(report.Counts) != 2 {
		t.Fatalf("snapshot rows = %d, want 2", len(report.Counts))
	}

	// the live session is cleared by the freeze
	counts, err := Session(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 0 {
		t.Errorf("session rows after freeze = %d, want 0", len(counts))
	}
}

func TestGenerateReport_EmptySessionRejected(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, "item-1", "Gold Ring", 5)
	scanTimes(t, db, "item-1", 2)

	if _, err := GenerateReport(db, ""); err != nil {
		t.Fatalf("first report: %v", err)
	}

	// calling again right away must not produce a duplicate from stale data
	_, err := GenerateReport(db, "")
	if !errors.Is(err, ErrEmptySession) {
		t.Errorf("second report error = %v, want ErrEmptySession", err)
	}

	var n int64
	db.Model(&models.PhysicalReport{}).Count(&n)
	if n != 1 {
		t.Errorf("reports = %d, want 1", n)
	}
}

func TestClearSession(t *testing.T) {
	db := testDB(t)
	seedItem(t, db, "item-1", "Gold Ring", 5)
	scanTimes(t, db, "item-1", 2)

	if err := ClearSession(db); err != nil {
		t.Fatalf("ClearSession() error = %v", err)
	}
	counts, _ := Session(db)
	if len(counts) != 0 {
		t.Errorf("session rows = %d, want 0", len(counts))
	}
}
