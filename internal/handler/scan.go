package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/qrtag"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/reconcile"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ScanHandler drives the physical inventory count: recording scans
// into the open session, generating frozen reports from it, and
// exporting reports as CSV.
type ScanHandler struct {
	DB *gorm.DB
}

func NewScanHandler(db *gorm.DB) *ScanHandler {
	return &ScanHandler{DB: db}
}

type scanReq struct {
	// Payload is the raw QR label content. ItemID may be sent instead
	// when the operator keys the id in manually.
	Payload string `json:"payload"`
	ItemID  string `json:"item_id"`
}

// Record accepts one scan. A QR payload is decoded first; a bare item
// id is used as-is. The same item scanned repeatedly accumulates in
// the session rather than producing duplicate rows.
func (h *ScanHandler) Record(c *gin.Context) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		payload, err := qrtag.Decode(req.Payload)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unreadable label: not a valid item code")
			return
		}
		itemID = payload.ID
	}

	count, item, err := reconcile.RecordScan(h.DB, itemID)
	if err != nil {
		if errors.Is(err, reconcile.ErrItemNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "scanned item is not in inventory")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record scan")
		return
	}

	util.Success(c, util.Response{"count": count, "item": item})
}

func (h *ScanHandler) Session(c *gin.Context) {
	counts, err := reconcile.Session(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load session")
		return
	}
	util.Success(c, util.Response{"counts": counts, "total": len(counts)})
}

func (h *ScanHandler) ClearSession(c *gin.Context) {
	if err := reconcile.ClearSession(h.DB); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to clear session")
		return
	}
	util.Success(c, util.Response{"message": "session cleared"})
}

type reportReq struct {
	Name string `json:"name"`
}

// GenerateReport freezes the open session into a report and clears it.
// An empty session is rejected so no blank reports accumulate.
func (h *ScanHandler) GenerateReport(c *gin.Context) {
	var req reportReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
			return
		}
	}

	report, err := reconcile.GenerateReport(h.DB, strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, reconcile.ErrEmptySession) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "no items scanned yet")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to generate report")
		return
	}

	util.Success(c, util.Response{"report": report})
}

func (h *ScanHandler) ListReports(c *gin.Context) {
	var reports []models.PhysicalReport
	if err := h.DB.Order("report_date DESC").Find(&reports).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load reports")
		return
	}
	util.Success(c, util.Response{"reports": reports, "total": len(reports)})
}

func (h *ScanHandler) GetReport(c *gin.Context) {
	var report models.PhysicalReport
	err := h.DB.Preload("Counts").Where("id = ?", c.Param("id")).First(&report).Error
	if err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}
	util.Success(c, util.Response{"report": report})
}

func (h *ScanHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.PhysicalReport{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Delete(&models.PhysicalReportCount{}, "physical_report_id = ?", id).Error
	})
	if err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}
	util.Success(c, util.Response{"message": "report deleted"})
}

// ExportReport streams a report as CSV. Item attributes beyond name
// are looked up from the current inventory and left blank for items
// that have since been sold out or removed.
func (h *ScanHandler) ExportReport(c *gin.Context) {
	var report models.PhysicalReport
	err := h.DB.Preload("Counts").Where("id = ?", c.Param("id")).First(&report).Error
	if err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}

	var sb strings.Builder
	sb.WriteString(csvHeader("Item Name", "Item Type", "Metal Type", "Purity", "Weight (g)", "Expected Quantity", "Scanned Quantity", "Discrepancy", "Status"))

	for _, count := range report.Counts {
		itemType, metalType, purity, weight := "N/A", "N/A", "N/A", "0"
		var item models.InventoryItem
		if err := h.DB.Where("id = ?", count.ItemID).First(&item).Error; err == nil {
			itemType = item.Type
			metalType = item.MetalType
			purity = item.Purity
			weight = strconv.FormatFloat(item.Weight, 'f', -1, 64)
		}

		status := "Match"
		if count.Discrepancy > 0 {
			status = "Over"
		} else if count.Discrepancy < 0 {
			status = "Short"
		}

		sb.WriteString(csvLine(
			count.ItemName,
			itemType,
			metalType,
			purity,
			weight,
			strconv.Itoa(count.ExpectedQuantity),
			strconv.Itoa(count.ScannedQuantity),
			strconv.Itoa(count.Discrepancy),
			status,
		))
	}

	filename := fmt.Sprintf("physical-inventory-%s.csv", report.ReportDate.Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(sb.String()))
}
