package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RateHandler manages the daily gold and silver rate history. One
// record exists per metal per date; posting again for a date the
// record already covers replaces it. The current rate is simply the
// record with the latest date.
type RateHandler struct {
	DB *gorm.DB
}

func NewRateHandler(db *gorm.DB) *RateHandler {
	return &RateHandler{DB: db}
}

type goldRateReq struct {
	Date      string  `json:"date" binding:"required"`
	Purity24K float64 `json:"purity24K" binding:"required"`
	Purity22K float64 `json:"purity22K" binding:"required"`
	Purity18K float64 `json:"purity18K" binding:"required"`
	Purity20K float64 `json:"purity20K"`
	Notes     string  `json:"notes"`
}

type silverRateReq struct {
	Date      string  `json:"date" binding:"required"`
	Purity999 float64 `json:"purity999" binding:"required"`
	Purity925 float64 `json:"purity925" binding:"required"`
	Notes     string  `json:"notes"`
}

func (h *RateHandler) ListGold(c *gin.Context) {
	var rates []models.GoldRate
	if err := h.DB.Order("date DESC").Find(&rates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rates")
		return
	}
	util.Success(c, util.Response{"rates": rates, "total": len(rates)})
}

func (h *RateHandler) ListSilver(c *gin.Context) {
	var rates []models.SilverRate
	if err := h.DB.Order("date DESC").Find(&rates).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rates")
		return
	}
	util.Success(c, util.Response{"rates": rates, "total": len(rates)})
}

// CurrentGold returns the most recent gold rate by date, or an empty
// response when no rate has ever been posted.
func (h *RateHandler) CurrentGold(c *gin.Context) {
	var rate models.GoldRate
	err := h.DB.Order("date DESC").First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Success(c, util.Response{"rate": nil})
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rate")
		return
	}
	util.Success(c, util.Response{"rate": rate})
}

func (h *RateHandler) CurrentSilver(c *gin.Context) {
	var rate models.SilverRate
	err := h.DB.Order("date DESC").First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Success(c, util.Response{"rate": nil})
		return
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load rate")
		return
	}
	util.Success(c, util.Response{"rate": rate})
}

// SetGold upserts the gold rate for a date inside one transaction so a
// replace never leaves the date without a record.
func (h *RateHandler) SetGold(c *gin.Context) {
	var req goldRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	for _, v := range []float64{req.Purity24K, req.Purity22K, req.Purity18K} {
		if err := util.ValidateRate(v); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	rate := models.GoldRate{
		ID:        uuid.New().String(),
		Date:      req.Date,
		Purity24K: req.Purity24K,
		Purity22K: req.Purity22K,
		Purity18K: req.Purity18K,
		Purity20K: req.Purity20K,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", req.Date).Delete(&models.GoldRate{}).Error; err != nil {
			return err
		}
		return tx.Create(&rate).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save rate")
		return
	}

	util.Success(c, util.Response{"rate": rate})
}

func (h *RateHandler) SetSilver(c *gin.Context) {
	var req silverRateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	for _, v := range []float64{req.Purity999, req.Purity925} {
		if err := util.ValidateRate(v); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	rate := models.SilverRate{
		ID:        uuid.New().String(),
		Date:      req.Date,
		Purity999: req.Purity999,
		Purity925: req.Purity925,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", req.Date).Delete(&models.SilverRate{}).Error; err != nil {
			return err
		}
		return tx.Create(&rate).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save rate")
		return
	}

	util.Success(c, util.Response{"rate": rate})
}

func (h *RateHandler) DeleteGold(c *gin.Context) {
	res := h.DB.Delete(&models.GoldRate{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete rate")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rate not found")
		return
	}
	util.Success(c, util.Response{"message": "rate deleted"})
}

func (h *RateHandler) DeleteSilver(c *gin.Context) {
	res := h.DB.Delete(&models.SilverRate{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete rate")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "rate not found")
		return
	}
	util.Success(c, util.Response{"message": "rate deleted"})
}
