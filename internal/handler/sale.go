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

// SaleHandler exposes the sales ledger. All stock-affecting work is
// delegated to the ledger package so each request commits or rolls back
// as a unit.
type SaleHandler struct {
	DB *gorm.DB
}

func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{DB: db}
}

type saleReq struct {
	CustomerID     string  `json:"customer_id" binding:"required"`
	ItemID         string  `json:"item_id" binding:"required"`
	Quantity       int     `json:"quantity" binding:"required"`
	MakingCharges  float64 `json:"making_charges"`
	Discount       float64 `json:"discount"`
	PaymentMethod  string  `json:"payment_method" binding:"required"`
	PaymentDetails string  `json:"payment_details"`
}

func (r saleReq) input() ledger.SaleInput {
	return ledger.SaleInput{
		CustomerID:     r.CustomerID,
		ItemID:         r.ItemID,
		Quantity:       r.Quantity,
		MakingCharges:  r.MakingCharges,
		Discount:       r.Discount,
		PaymentMethod:  r.PaymentMethod,
		PaymentDetails: r.PaymentDetails,
	}
}

// List returns sales newest first, with optional customer, payment
// method, date range and free-text filters.
func (h *SaleHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Sale{})

	if customerID := c.Query("customer_id"); customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}
	if method := c.Query("payment_method"); method != "" {
		q = q.Where("payment_method = ?", method)
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
		q = q.Where("bill_number LIKE ? OR customer_name LIKE ? OR item_name LIKE ?", like, like, like)
	}

	var sales []models.Sale
	if err := q.Order("created_at DESC").Find(&sales).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load sales")
		return
	}

	var totalAmount float64
	for i := range sales {
		totalAmount += sales[i].TotalAmount
	}

	util.Success(c, util.Response{
		"sales":        sales,
		"total":        len(sales),
		"total_amount": totalAmount,
	})
}

func (h *SaleHandler) Get(c *gin.Context) {
	var sale models.Sale
	if err := h.DB.Where("id = ?", c.Param("id")).First(&sale).Error; err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}
	util.Success(c, util.Response{"sale": sale})
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req saleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	sale, err := ledger.CreateSale(h.DB, req.input())
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"sale": sale})
}

func (h *SaleHandler) Update(c *gin.Context) {
	var req saleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	sale, err := ledger.UpdateSale(h.DB, c.Param("id"), req.input())
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{"sale": sale})
}

func (h *SaleHandler) Delete(c *gin.Context) {
	if err := ledger.DeleteSale(h.DB, c.Param("id")); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{"message": "sale deleted, stock restored"})
}
