package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/qrtag"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryHandler manages manual inventory entries and QR label
// generation. Stock mutations driven by sales and purchases go through
// the ledger package, not through this handler.
type InventoryHandler struct {
	DB    *gorm.DB
	Image qrtag.ImageFunc // injected so tests run without rendering
}

func NewInventoryHandler(db *gorm.DB, image qrtag.ImageFunc) *InventoryHandler {
	if image == nil {
		image = qrtag.PNGImage
	}
	return &InventoryHandler{DB: db, Image: image}
}

type itemReq struct {
	Name         string  `json:"name" binding:"required,max=128"`
	Type         string  `json:"type" binding:"max=64"`
	MetalType    string  `json:"metal_type" binding:"required,oneof=gold silver"`
	Weight       float64 `json:"weight" binding:"required,gt=0"`
	Purity       string  `json:"purity" binding:"max=16"`
	PricePerGram float64 `json:"price_per_gram" binding:"required,gt=0"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
}

// List returns inventory items with optional metal type and search
// filters.
func (h *InventoryHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.InventoryItem{})

	if metal := c.Query("metal_type"); metal != "" {
		q = q.Where("metal_type = ?", metal)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR type LIKE ?", like, like)
	}

	var items []models.InventoryItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load inventory")
		return
	}

	var totalValue float64
	for i := range items {
		totalValue += items[i].TotalValue
	}

	util.Success(c, util.Response{
		"items":       items,
		"total":       len(items),
		"total_value": totalValue,
	})
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateWeight(req.Weight); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateRate(req.PricePerGram); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	item := models.InventoryItem{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Type:         strings.TrimSpace(req.Type),
		MetalType:    req.MetalType,
		Weight:       req.Weight,
		Purity:       req.Purity,
		PricePerGram: req.PricePerGram,
		Quantity:     req.Quantity,
		TotalValue:   req.Weight * req.PricePerGram * float64(req.Quantity),
		CreatedAt:    time.Now(),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save item")
		return
	}

	util.Success(c, util.Response{"item": item})
}

func (h *InventoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var item models.InventoryItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "item not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load item")
		}
		return
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Type = strings.TrimSpace(req.Type)
	item.MetalType = req.MetalType
	item.Weight = req.Weight
	item.Purity = req.Purity
	item.PricePerGram = req.PricePerGram
	item.Quantity = req.Quantity
	item.TotalValue = req.Weight * req.PricePerGram * float64(req.Quantity)
	// attribute edit invalidates any cached label payload
	item.QRCode = ""

	if err := h.DB.Save(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save item")
		return
	}

	util.Success(c, util.Response{"item": item})
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.DB.Delete(&models.InventoryItem{}, "id = ?", id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete item")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "item not found")
		return
	}

	util.Success(c, util.Response{"message": "item deleted"})
}

// QRCode returns the item's label: the encoded payload plus a base64
// PNG rendering. The payload is cached on the item so reprints of an
// unchanged item produce an identical label.
func (h *InventoryHandler) QRCode(c *gin.Context) {
	id := c.Param("id")

	var item models.InventoryItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "item not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load item")
		}
		return
	}

	payload := item.QRCode
	if payload == "" {
		var err error
		payload, err = qrtag.Encode(&item)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encode label")
			return
		}
		if err := h.DB.Model(&item).Update("qr_code", payload).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to cache label")
			return
		}
	}

	png, err := h.Image(payload, 300)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render label")
		return
	}

	util.Success(c, util.Response{
		"item_id": item.ID,
		"payload": payload,
		"image":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}
