package ledger

import (
	"errors"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseInput is the operator's form input for recording or editing a
// purchase from a seller.
type PurchaseInput struct {
	SellerID       string
	ItemName       string
	Type           string
	MetalType      string
	Weight         float64
	Purity         string
	PricePerGram   float64
	Quantity       int
	Notes          string
	AddToInventory bool
}

func validatePurchase(in PurchaseInput) error {
	if in.ItemName == "" {
		return validationf("item name is required")
	}
	if err := util.ValidateMetalType(in.MetalType); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if err := util.ValidateWeight(in.Weight); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if err := util.ValidateRate(in.PricePerGram); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if in.Quantity <= 0 {
		return validationf("quantity must be greater than 0")
	}
	return nil
}

// resolveSeller loads the counterparty and promotes a customer-only
// party to the "both" role once it sells to the shop.
func resolveSeller(tx *gorm.DB, sellerID string) (*models.Party, error) {
	var seller models.Party
	if err := tx.Where("id = ?", sellerID).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if seller.Role == models.RoleCustomer {
		seller.Role = models.RoleBoth
		if err := tx.Save(&seller).Error; err != nil {
			return nil, err
		}
	}
	return &seller, nil
}

// CreatePurchase records an acquisition and, when AddToInventory is set,
// materializes the purchased goods as a new linked inventory item.
func CreatePurchase(db *gorm.DB, in PurchaseInput) (*models.Purchase, error) {
	if err := validatePurchase(in); err != nil {
		return nil, err
	}

	var purchase *models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		seller, err := resolveSeller(tx, in.SellerID)
		if err != nil {
			return err
		}

		var existing []string
		if err := tx.Model(&models.Purchase{}).Pluck("purchase_number", &existing).Error; err != nil {
			return err
		}

		totalWeight := in.Weight * float64(in.Quantity)
		purchase = &models.Purchase{
			ID:             uuid.New().String(),
			PurchaseNumber: NextPurchaseNumber(existing),
			SellerID:       seller.ID,
			SellerName:     seller.Name,
			ItemName:       in.ItemName,
			Type:           in.Type,
			MetalType:      in.MetalType,
			Weight:         in.Weight,
			Purity:         in.Purity,
			PricePerGram:   in.PricePerGram,
			TotalWeight:    totalWeight,
			Quantity:       in.Quantity,
			TotalAmount:    totalWeight * in.PricePerGram,
			Notes:          in.Notes,
			CreatedAt:      time.Now(),
		}
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		if in.AddToInventory {
			if _, err := UpsertFromPurchase(tx, purchase); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// UpdatePurchase edits a recorded purchase in place (same id and
// purchase number). When AddToInventory is set, the previously
// materialized inventory item is removed and replaced with one built
// from the new values. Removal is exact via the purchase link; the
// returned warning is non-nil when only ambiguous attribute matching
// was possible.
func UpdatePurchase(db *gorm.DB, id string, in PurchaseInput) (*models.Purchase, *ReversalWarning, error) {
	if err := validatePurchase(in); err != nil {
		return nil, nil, err
	}

	var (
		purchase *models.Purchase
		warning  *ReversalWarning
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var old models.Purchase
		if err := tx.Where("id = ?", id).First(&old).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		seller, err := resolveSeller(tx, in.SellerID)
		if err != nil {
			return err
		}

		if in.AddToInventory {
			warning, err = RemoveForPurchase(tx, &old, false)
			if err != nil {
				return err
			}
		}

		totalWeight := in.Weight * float64(in.Quantity)
		old.SellerID = seller.ID
		old.SellerName = seller.Name
		old.ItemName = in.ItemName
		old.Type = in.Type
		old.MetalType = in.MetalType
		old.Weight = in.Weight
		old.Purity = in.Purity
		old.PricePerGram = in.PricePerGram
		old.TotalWeight = totalWeight
		old.Quantity = in.Quantity
		old.TotalAmount = totalWeight * in.PricePerGram
		old.Notes = in.Notes
		if err := tx.Save(&old).Error; err != nil {
			return err
		}

		if in.AddToInventory {
			if _, err := UpsertFromPurchase(tx, &old); err != nil {
				return err
			}
		}
		purchase = &old
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return purchase, warning, nil
}

// DeletePurchase removes a purchase and, best effort, the inventory item
// it materialized. Quantity participates in the fallback match on delete
// so an unrelated restocked item with the same name is less likely to be
// taken.
func DeletePurchase(db *gorm.DB, id string) (*ReversalWarning, error) {
	var warning *ReversalWarning
	err := db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.Where("id = ?", id).First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		warning, err = RemoveForPurchase(tx, &purchase, true)
		if err != nil {
			return err
		}

		return tx.Delete(&models.Purchase{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return warning, nil
}
