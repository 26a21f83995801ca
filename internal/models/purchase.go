package models

import "time"

// Purchase records an acquisition of metal or jewelry from a seller.
// SellerName is a snapshot taken at commit time.
//
//	TotalWeight = Weight * Quantity
//	TotalAmount = TotalWeight * PricePerGram
type Purchase struct {
	ID             string  `gorm:"primaryKey;size:36" json:"id"`
	PurchaseNumber string  `gorm:"size:16;index" json:"purchaseNumber"` // "P" + 4 digits
	SellerID       string  `gorm:"size:36;index" json:"sellerId"`
	SellerName     string  `gorm:"size:128" json:"sellerName"`
	ItemName       string  `gorm:"size:128;not null" json:"itemName"`
	Type           string  `gorm:"size:64" json:"type"`
	MetalType      string  `gorm:"size:16;index;not null" json:"metalType"`
	Weight         float64 `gorm:"not null" json:"weight"` // grams, per unit
	Purity         string  `gorm:"size:16" json:"purity"`
	PricePerGram   float64 `gorm:"not null" json:"pricePerGram"`
	TotalWeight    float64 `gorm:"not null" json:"totalWeight"`
	Quantity       int     `gorm:"not null" json:"quantity"`
	TotalAmount    float64 `gorm:"not null" json:"totalAmount"`
	Notes          string  `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
