package models

import "time"

// PhysicalCount is one item's running tally in the open scan session.
// ExpectedQuantity is snapshotted from the ledger at first scan and is
// not updated by later inventory changes.
type PhysicalCount struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	ItemID           string    `gorm:"size:36;uniqueIndex;not null" json:"itemId"`
	ItemName         string    `gorm:"size:128" json:"itemName"`
	ScannedQuantity  int       `gorm:"not null" json:"scannedQuantity"`
	ExpectedQuantity int       `gorm:"not null" json:"expectedQuantity"`
	Discrepancy      int       `gorm:"not null" json:"discrepancy"` // scanned - expected
	ScannedAt        time.Time `json:"scannedAt"`
}

// PhysicalReport is a frozen point-in-time reconciliation report.
// Once generated it is immutable; the only operations are read, export
// and delete.
type PhysicalReport struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	ReportDate           time.Time `gorm:"index;not null" json:"reportDate"`
	Name                 string    `gorm:"size:128" json:"name"`
	TotalItemsScanned    int       `gorm:"not null" json:"totalItemsScanned"`
	TotalItemsExpected   int       `gorm:"not null" json:"totalItemsExpected"`
	ItemsWithDiscrepancy int       `gorm:"not null" json:"itemsWithDiscrepancy"`
	CreatedAt            time.Time `json:"createdAt"`

	Counts []PhysicalReportCount `gorm:"constraint:OnDelete:CASCADE" json:"counts"`
}

// PhysicalReportCount is the immutable per-item snapshot inside a report.
type PhysicalReportCount struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	PhysicalReportID string    `gorm:"size:36;index;not null" json:"-"`
	ItemID           string    `gorm:"size:36" json:"itemId"`
	ItemName         string    `gorm:"size:128" json:"itemName"`
	ScannedQuantity  int       `gorm:"not null" json:"scannedQuantity"`
	ExpectedQuantity int       `gorm:"not null" json:"expectedQuantity"`
	Discrepancy      int       `gorm:"not null" json:"discrepancy"`
	ScannedAt        time.Time `json:"scannedAt"`
}
