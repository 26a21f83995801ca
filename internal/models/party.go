package models

import "time"

// Party roles. A single party record can act as a sales counterparty,
// a purchase counterparty, or both.
const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
	RoleBoth     = "both"
)

// Party represents a customer or seller of the shop.
type Party struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:128" json:"email"`
	Address   string    `gorm:"size:255" json:"address"`
	Role      string    `gorm:"size:16;index;not null;default:customer" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}
