package models

import "time"

// GoldRate holds the per-gram gold rates for one calendar day.
// At most one record exists per date; posting again for the same date
// replaces the previous record.
type GoldRate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Date      string    `gorm:"size:10;uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Purity24K float64   `gorm:"not null" json:"purity24K"`
	Purity22K float64   `gorm:"not null" json:"purity22K"`
	Purity18K float64   `gorm:"not null" json:"purity18K"`
	Purity20K float64   `json:"purity20K,omitempty"`
	Notes     string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SilverRate holds the per-gram silver rates for one calendar day.
type SilverRate struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Date      string    `gorm:"size:10;uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Purity999 float64   `gorm:"not null" json:"purity999"` // pure silver
	Purity925 float64   `gorm:"not null" json:"purity925"` // sterling
	Notes     string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
