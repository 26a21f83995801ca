package ledger

import (
	"errors"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleInput is the operator's form input for creating or editing a sale.
// Price fields are computed from the item at commit time, never taken
// from the caller.
type SaleInput struct {
	CustomerID     string
	ItemID         string
	Quantity       int
	MakingCharges  float64
	Discount       float64
	PaymentMethod  string
	PaymentDetails string
}

// CreateSale validates and commits a sale: allocate the bill number,
// compute the price breakdown, decrement the inventory ledger and
// persist the sale, all in one transaction. Any validation failure
// aborts before the first write.
func CreateSale(db *gorm.DB, in SaleInput) (*models.Sale, error) {
	var sale *models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		sale, err = commitSale(tx, in, "", "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// UpdateSale edits a committed sale by reversing it and re-applying the
// new values: the old quantity is restored to the ledger first, then the
// create path runs again with the same id and bill number.
func UpdateSale(db *gorm.DB, id string, in SaleInput) (*models.Sale, error) {
	var sale *models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		var old models.Sale
		if err := tx.Where("id = ?", id).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if _, err := Restore(tx, old.ItemID, old.Quantity, FallbackAttrs{
			Name:         old.ItemName,
			PricePerUnit: old.PricePerUnit,
		}); err != nil {
			return err
		}

		var err error
		sale, err = commitSale(tx, in, old.ID, old.BillNumber)
		if err != nil {
			return err
		}
		sale.CreatedAt = old.CreatedAt
		return tx.Save(sale).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// DeleteSale reverses a sale: the sold quantity goes back to the ledger
// (re-synthesizing a placeholder item if the original was removed) and
// the sale record is deleted.
func DeleteSale(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		if err := tx.Where("id = ?", id).First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if _, err := Restore(tx, sale.ItemID, sale.Quantity, FallbackAttrs{
			Name:         sale.ItemName,
			PricePerUnit: sale.PricePerUnit,
		}); err != nil {
			return err
		}

		return tx.Delete(&models.Sale{}, "id = ?", id).Error
	})
}

// commitSale runs the shared validate-compute-decrement-persist path.
// For an edit, saleID and billNumber carry over from the old record;
// for a create they are empty and freshly allocated.
func commitSale(tx *gorm.DB, in SaleInput, saleID, billNumber string) (*models.Sale, error) {
	var customer models.Party
	if err := tx.Where("id = ?", in.CustomerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var item models.InventoryItem
	if err := tx.Where("id = ?", in.ItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Quantity <= 0 {
		return nil, validationf("quantity must be greater than 0")
	}
	if in.Quantity > item.Quantity {
		return nil, validationf("insufficient inventory: only %d available, trying to sell %d", item.Quantity, in.Quantity)
	}
	if in.MakingCharges < 0 {
		return nil, validationf("making charges cannot be negative")
	}
	if in.Discount < 0 {
		return nil, validationf("discount cannot be negative")
	}
	if err := util.ValidatePaymentMethod(in.PaymentMethod); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	// pricePerUnit is the item's full bundle value at sale time, matching
	// how prices are quoted on the shop floor (per tagged piece, not per
	// gram or per remaining unit).
	pricePerUnit := item.TotalValue
	goldValue := pricePerUnit * float64(in.Quantity)
	subtotal := goldValue + in.MakingCharges
	totalAmount := subtotal - in.Discount
	if totalAmount < 0 {
		return nil, validationf("total amount cannot be negative")
	}

	if billNumber == "" {
		var existing []string
		if err := tx.Model(&models.Sale{}).Pluck("bill_number", &existing).Error; err != nil {
			return nil, err
		}
		billNumber = NextBillNumber(existing)
	}
	if saleID == "" {
		saleID = uuid.New().String()
	}

	if _, err := Decrement(tx, item.ID, in.Quantity); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		ID:             saleID,
		BillNumber:     billNumber,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		ItemID:         item.ID,
		ItemName:       item.Name,
		Quantity:       in.Quantity,
		PricePerUnit:   pricePerUnit,
		GoldValue:      goldValue,
		MakingCharges:  in.MakingCharges,
		Subtotal:       subtotal,
		Discount:       in.Discount,
		TotalAmount:    totalAmount,
		PaymentMethod:  in.PaymentMethod,
		PaymentDetails: in.PaymentDetails,
		CreatedAt:      time.Now(),
	}
	if err := tx.Save(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}
