package models

import "time"

// Backup records one encrypted on-disk backup file of the shop's data.
type Backup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FileName  string    `gorm:"size:128;not null" json:"fileName"`
	FilePath  string    `gorm:"size:255;not null" json:"-"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}
