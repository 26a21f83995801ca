package ledger

import (
	"errors"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The functions in this file are the only writers of InventoryItem
// quantity and total value. Every exit path leaves
// totalValue == weight * pricePerGram * quantity for each remaining item.

// FallbackAttrs carries the snapshot a sale keeps of its item, used to
// re-synthesize a placeholder when restoring stock for an item that was
// removed after hitting zero quantity. Weight, purity and creation time
// were lost with the original row, so the placeholder uses defaults.
type FallbackAttrs struct {
	Name         string
	PricePerUnit float64
	MetalType    string
}

func recalcValue(item *models.InventoryItem) {
	item.TotalValue = item.Weight * item.PricePerGram * float64(item.Quantity)
}

// Decrement reduces an item's quantity by qty and recomputes its total
// value. If the quantity reaches zero the row is removed from the active
// inventory entirely. The returned item reflects the post-decrement
// state (Quantity 0 for a removed item).
func Decrement(tx *gorm.DB, itemID string, qty int) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newQty := item.Quantity - qty
	if newQty <= 0 {
		if err := tx.Delete(&models.InventoryItem{}, "id = ?", itemID).Error; err != nil {
			return nil, err
		}
		item.Quantity = 0
		item.TotalValue = 0
		return &item, nil
	}

	item.Quantity = newQty
	recalcValue(&item)
	if err := tx.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Restore puts qty units back on an item, typically when a sale is
// deleted or edited. If the item row still exists its quantity is
// increased; if it was removed after being sold out, a minimal
// placeholder item is re-synthesized from the fallback attributes under
// the same id. The placeholder restore is approximate: unit weight
// defaults to 1 gram and the sale's per-unit price stands in for the
// price per gram.
func Restore(tx *gorm.DB, itemID string, qty int, fb FallbackAttrs) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := tx.Where("id = ?", itemID).First(&item).Error
	if err == nil {
		item.Quantity += qty
		recalcValue(&item)
		if err := tx.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	metal := fb.MetalType
	if metal == "" {
		metal = models.MetalGold
	}
	item = models.InventoryItem{
		ID:           itemID,
		Name:         fb.Name,
		MetalType:    metal,
		Weight:       1,
		PricePerGram: fb.PricePerUnit,
		Quantity:     qty,
		CreatedAt:    time.Now(),
	}
	recalcValue(&item)
	if err := tx.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertFromPurchase materializes a new inventory item from a purchase
// and records the purchase link so a later edit or delete can reverse it
// exactly.
func UpsertFromPurchase(tx *gorm.DB, p *models.Purchase) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		ID:               uuid.New().String(),
		Name:             p.ItemName,
		Type:             p.Type,
		MetalType:        p.MetalType,
		Weight:           p.Weight,
		Purity:           p.Purity,
		PricePerGram:     p.PricePerGram,
		Quantity:         p.Quantity,
		SourcePurchaseID: p.ID,
		CreatedAt:        time.Now(),
	}
	recalcValue(&item)
	if err := tx.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveForPurchase removes the inventory item a purchase materialized.
// The purchase link is tried first; for unlinked rows (imported legacy
// data) it falls back to attribute matching on name, type and price per
// gram within a 0.01 tolerance, plus quantity when matchQuantity is set.
// The returned warning is non-nil when the fallback fired and did not
// identify exactly one item.
func RemoveForPurchase(tx *gorm.DB, p *models.Purchase, matchQuantity bool) (*ReversalWarning, error) {
	res := tx.Delete(&models.InventoryItem{}, "source_purchase_id = ?", p.ID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return nil, nil
	}

	q := tx.Where("name = ? AND type = ? AND price_per_gram BETWEEN ? AND ?",
		p.ItemName, p.Type, p.PricePerGram-0.01, p.PricePerGram+0.01)
	if matchQuantity {
		q = q.Where("quantity = ?", p.Quantity)
	}
	res = q.Delete(&models.InventoryItem{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected != 1 {
		return &ReversalWarning{PurchaseID: p.ID, Matched: int(res.RowsAffected)}, nil
	}
	return nil, nil
}
