// Package reconcile accumulates QR scan events into the open physical
// inventory session and freezes sessions into immutable reports.
package reconcile

import (
	"errors"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when a scanned payload references an item
// that no longer exists in the inventory; the scan leaves no count
// mutation behind.
var ErrItemNotFound = errors.New("scanned item not found in inventory")

// ErrEmptySession is returned when a report is requested with no scans
// in the session, which also prevents generating a duplicate report
// right after freezing one.
var ErrEmptySession = errors.New("no scanned items in session")

// RecordScan applies one scan event to the open session. The first scan
// of an item snapshots the ledger quantity as expected; later ledger
// changes do not touch counts already in progress. Scanning the same tag
// repeatedly is the intended way to count multiple physical units.
func RecordScan(db *gorm.DB, itemID string) (*models.PhysicalCount, *models.InventoryItem, error) {
	var (
		count models.PhysicalCount
		item  models.InventoryItem
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		err := tx.Where("item_id = ?", itemID).First(&count).Error
		switch {
		case err == nil:
			count.ScannedQuantity++
			count.Discrepancy = count.ScannedQuantity - count.ExpectedQuantity
			count.ScannedAt = time.Now()
			return tx.Save(&count).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			count = models.PhysicalCount{
				ID:               uuid.New().String(),
				ItemID:           item.ID,
				ItemName:         item.Name,
				ScannedQuantity:  1,
				ExpectedQuantity: item.Quantity,
				Discrepancy:      1 - item.Quantity,
				ScannedAt:        time.Now(),
			}
			return tx.Create(&count).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return &count, &item, nil
}

// Session returns the open session's counts in scan order.
func Session(db *gorm.DB) ([]models.PhysicalCount, error) {
	var counts []models.PhysicalCount
	if err := db.Order("scanned_at ASC").Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// ClearSession discards all counts of the open session.
func ClearSession(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&models.PhysicalCount{}).Error
}

// GenerateReport freezes the open session into an immutable report and
// clears the session, both in one transaction. The aggregate totals and
// the per-item snapshot are fixed at this point and never updated.
func GenerateReport(db *gorm.DB, name string) (*models.PhysicalReport, error) {
	var report *models.PhysicalReport
	err := db.Transaction(func(tx *gorm.DB) error {
		var counts []models.PhysicalCount
		if err := tx.Order("scanned_at ASC").Find(&counts).Error; err != nil {
			return err
		}
		if len(counts) == 0 {
			return ErrEmptySession
		}

		now := time.Now()
		if name == "" {
			name = "Physical Inventory - " + now.Format("2006-01-02")
		}

		report = &models.PhysicalReport{
			ID:         uuid.New().String(),
			ReportDate: now,
			Name:       name,
			CreatedAt:  now,
		}
		for _, c := range counts {
			report.TotalItemsScanned += c.ScannedQuantity
			report.TotalItemsExpected += c.ExpectedQuantity
			if c.Discrepancy != 0 {
				report.ItemsWithDiscrepancy++
			}
			report.Counts = append(report.Counts, models.PhysicalReportCount{
				ID:               uuid.New().String(),
				PhysicalReportID: report.ID,
				ItemID:           c.ItemID,
				ItemName:         c.ItemName,
				ScannedQuantity:  c.ScannedQuantity,
				ExpectedQuantity: c.ExpectedQuantity,
				Discrepancy:      c.Discrepancy,
				ScannedAt:        c.ScannedAt,
			})
		}

		if err := tx.Create(report).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.PhysicalCount{}).Error
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
