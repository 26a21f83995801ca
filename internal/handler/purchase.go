package handler

import (
	"net/http"
	"strings"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/ledger"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PurchaseHandler exposes the purchase ledger. Reversal ambiguity
// (a delete or edit whose linked stock could not be matched exactly)
// surfaces as a warning field on an otherwise successful response.
type PurchaseHandler struct {
	DB *gorm.DB
}

func NewPurchaseHandler(db *gorm.DB) *PurchaseHandler {
	return &PurchaseHandler{DB: db}
}

type purchaseReq struct {
	SellerID       string  `json:"seller_id" binding:"required"`
	ItemName       string  `json:"item_name" binding:"required,max=128"`
	Type           string  `json:"type" binding:"max=64"`
	MetalType      string  `json:"metal_type" binding:"required"`
	Weight         float64 `json:"weight" binding:"required"`
	Purity         string  `json:"purity" binding:"max=16"`
	PricePerGram   float64 `json:"price_per_gram" binding:"required"`
	Quantity       int     `json:"quantity" binding:"required"`
	Notes          string  `json:"notes"`
	// pointer so an omitted key is distinguishable from explicit false;
	// a purchase adds to inventory unless the caller opts out
	AddToInventory *bool `json:"add_to_inventory"`
}

func (r purchaseReq) input() ledger.PurchaseInput {
	addToInventory := true
	if r.AddToInventory != nil {
		addToInventory = *r.AddToInventory
	}
	return ledger.PurchaseInput{
		SellerID:       r.SellerID,
		ItemName:       strings.TrimSpace(r.ItemName),
		Type:           strings.TrimSpace(r.Type),
		MetalType:      r.MetalType,
		Weight:         r.Weight,
		Purity:         r.Purity,
		PricePerGram:   r.PricePerGram,
		Quantity:       r.Quantity,
		Notes:          r.Notes,
		AddToInventory: addToInventory,
	}
}

func (h *PurchaseHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Purchase{})

	if sellerID := c.Query("seller_id"); sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}
	if metal := c.Query("metal_type"); metal != "" {
		q = q.Where("metal_type = ?", metal)
	}
	if purity := c.Query("purity"); purity != "" {
		q = q.Where("purity = ?", purity)
	}
	if from := c.Query("date_from"); from != "" {
		if err := util.ValidateDate(from); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		q = q.Where("date(created_at) >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		if err := util.ValidateDate(to); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		q = q.Where("date(created_at) <= ?", to)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("purchase_number LIKE ? OR seller_name LIKE ? OR item_name LIKE ?", like, like, like)
	}

	var purchases []models.Purchase
	if err := q.Order("created_at DESC").Find(&purchases).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load purchases")
		return
	}

	var totalAmount float64
	for i := range purchases {
		totalAmount += purchases[i].TotalAmount
	}

	util.Success(c, util.Response{
		"purchases":    purchases,
		"total":        len(purchases),
		"total_amount": totalAmount,
	})
}

func (h *PurchaseHandler) Get(c *gin.Context) {
	var purchase models.Purchase
	if err := h.DB.Where("id = ?", c.Param("id")).First(&purchase).Error; err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}
	util.Success(c, util.Response{"purchase": purchase})
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	purchase, err := ledger.CreatePurchase(h.DB, req.input())
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"purchase": purchase})
}

func (h *PurchaseHandler) Update(c *gin.Context) {
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	purchase, warning, err := ledger.UpdatePurchase(h.DB, c.Param("id"), req.input())
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	resp := util.Response{"purchase": purchase}
	if warning != nil {
		resp["warning"] = warning.Error()
	}
	util.Success(c, resp)
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	warning, err := ledger.DeletePurchase(h.DB, c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	resp := util.Response{"message": "purchase deleted"}
	if warning != nil {
		resp["warning"] = warning.Error()
	}
	util.Success(c, resp)
}
