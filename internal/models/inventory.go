package models

import "time"

// Metal types.
const (
	MetalGold   = "gold"
	MetalSilver = "silver"
)

// InventoryItem is one stock-keeping unit of jewelry.
// TotalValue must always equal Weight * PricePerGram * Quantity; the
// inventory ledger is the sole writer of Quantity and TotalValue.
// An item whose quantity reaches zero is removed from the table entirely.
type InventoryItem struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	Name         string  `gorm:"size:128;not null" json:"name"`
	Type         string  `gorm:"size:64;index" json:"type"` // e.g. Ring, Necklace, Bangle
	MetalType    string  `gorm:"size:16;index;not null" json:"metalType"`
	Weight       float64 `gorm:"not null" json:"weight"` // grams, per unit
	Purity       string  `gorm:"size:16" json:"purity"`  // e.g. 22K, 925
	PricePerGram float64 `gorm:"not null" json:"pricePerGram"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	TotalValue   float64 `gorm:"not null" json:"totalValue"`

	// SourcePurchaseID links an item materialized by a purchase back to
	// that purchase, so edit/delete reversal can find it exactly instead
	// of matching by attributes.
	SourcePurchaseID string `gorm:"size:36;index" json:"sourcePurchaseId,omitempty"`

	QRCode    string    `gorm:"type:text" json:"qrCode,omitempty"` // cached encoded payload
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
