package models

import "time"

// Payment methods accepted at the counter.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentEsewa  = "esewa"
	PaymentKhalti = "khalti"
	PaymentOther  = "other"
)

// Sale is a committed sales transaction. Customer and item names are
// denormalized snapshots taken at commit time so later renames do not
// rewrite history.
//
// Arithmetic held at all times:
//
//	GoldValue   = PricePerUnit * Quantity
//	Subtotal    = GoldValue + MakingCharges
//	TotalAmount = Subtotal - Discount  (>= 0)
type Sale struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	BillNumber     string    `gorm:"size:16;index" json:"billNumber"`
	CustomerID     string    `gorm:"size:36;index" json:"customerId"`
	CustomerName   string    `gorm:"size:128" json:"customerName"`
	ItemID         string    `gorm:"size:36;index" json:"itemId"`
	ItemName       string    `gorm:"size:128" json:"itemName"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	PricePerUnit   float64   `gorm:"not null" json:"pricePerUnit"` // item bundle value at sale time
	GoldValue      float64   `gorm:"not null" json:"goldValue"`
	MakingCharges  float64   `gorm:"not null" json:"makingCharges"` // karigar charges
	Subtotal       float64   `gorm:"not null" json:"subtotal"`
	Discount       float64   `gorm:"not null" json:"discount"`
	TotalAmount    float64   `gorm:"not null" json:"totalAmount"`
	PaymentMethod  string    `gorm:"size:16;index;default:cash" json:"paymentMethod"`
	PaymentDetails string    `gorm:"size:128" json:"paymentDetails,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"-"`
}
