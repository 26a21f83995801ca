package models

import "time"

// ShopInfo is the single-row shop setup and credential record. The app
// serves exactly one shop; Setup creates this row once and Login checks
// against it.
type ShopInfo struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	ShopName           string    `gorm:"size:128;not null" json:"shopName"`
	Address            string    `gorm:"size:255" json:"address"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`
	SecurityQuestion   string    `gorm:"size:255" json:"securityQuestion,omitempty"`
	SecurityAnswerHash string    `gorm:"size:255" json:"-"`
	SetupCompleted     bool      `gorm:"not null" json:"setupCompleted"`
	SetupDate          time.Time `json:"setupDate"`
	UpdatedAt          time.Time `json:"-"`
}
