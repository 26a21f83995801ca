package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportExportHandler serves whole-database JSON snapshots plus
// per-collection CSV and XLSX exports.
type ImportExportHandler struct {
	DB *gorm.DB
}

func NewImportExportHandler(db *gorm.DB) *ImportExportHandler {
	return &ImportExportHandler{DB: db}
}

// dataBundle is the portable snapshot of every business collection.
// The same shape is used for JSON export, JSON import and encrypted
// backups, so a file produced by any of them restores through import.
type dataBundle struct {
	Customers   []models.Party         `json:"customers"`
	Inventory   []models.InventoryItem `json:"inventory"`
	Sales       []models.Sale          `json:"sales"`
	Purchases   []models.Purchase      `json:"purchases"`
	GoldRates   []models.GoldRate      `json:"goldRates"`
	SilverRates []models.SilverRate    `json:"silverRates"`
}

type exportFile struct {
	dataBundle
	ExportDate string `json:"exportDate"`
	Version    string `json:"version"`
}

// importFile distinguishes an absent collection (key missing, leave
// the table untouched) from a present-but-empty one (replace with
// nothing).
type importFile struct {
	Customers   *[]models.Party         `json:"customers"`
	Inventory   *[]models.InventoryItem `json:"inventory"`
	Sales       *[]models.Sale          `json:"sales"`
	Purchases   *[]models.Purchase      `json:"purchases"`
	GoldRates   *[]models.GoldRate      `json:"goldRates"`
	SilverRates *[]models.SilverRate    `json:"silverRates"`
}

func loadBundle(db *gorm.DB) (*dataBundle, error) {
	var b dataBundle
	for _, dst := range []interface{}{
		&b.Customers, &b.Inventory, &b.Sales, &b.Purchases, &b.GoldRates, &b.SilverRates,
	} {
		if err := db.Find(dst).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}

// replaceCollection swaps a table's entire contents for the provided
// rows. Used by import and backup restore inside their transactions.
func replaceCollection[T any](tx *gorm.DB, rows []T) error {
	var zero T
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&zero).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// ExportJSON streams all collections as one backup document.
func (h *ImportExportHandler) ExportJSON(c *gin.Context) {
	bundle, err := loadBundle(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load data")
		return
	}

	out := exportFile{
		dataBundle: *bundle,
		ExportDate: time.Now().Format(time.RFC3339),
		Version:    "1.0",
	}

	filename := fmt.Sprintf("gold-shop-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.JSON(http.StatusOK, out)
}

// ImportJSON restores collections from a backup document. Each key
// present replaces that table wholesale; keys absent from the file
// leave their tables untouched. The whole import commits or rolls
// back as one unit.
func (h *ImportExportHandler) ImportJSON(c *gin.Context) {
	var in importFile
	if err := c.ShouldBindJSON(&in); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid backup file")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if in.Customers != nil {
			if err := replaceCollection(tx, *in.Customers); err != nil {
				return err
			}
		}
		if in.Inventory != nil {
			if err := replaceCollection(tx, *in.Inventory); err != nil {
				return err
			}
		}
		if in.Sales != nil {
			if err := replaceCollection(tx, *in.Sales); err != nil {
				return err
			}
		}
		if in.Purchases != nil {
			if err := replaceCollection(tx, *in.Purchases); err != nil {
				return err
			}
		}
		if in.GoldRates != nil {
			if err := replaceCollection(tx, *in.GoldRates); err != nil {
				return err
			}
		}
		if in.SilverRates != nil {
			if err := replaceCollection(tx, *in.SilverRates); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "import failed, no changes applied")
		return
	}

	util.Success(c, util.Response{"message": "data imported"})
}

// csvHeader joins column titles unquoted. csvLine quotes every data
// field and doubles embedded quotes.
func csvHeader(fields ...string) string {
	return strings.Join(fields, ",") + "\n"
}

func csvLine(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errUnknownCollection marks a bad ?type= value, as opposed to a
// failure reading the collection itself.
var errUnknownCollection = errors.New("unknown collection")

type csvTable struct {
	filename string
	header   []string
	rows     [][]string
}

func (h *ImportExportHandler) csvTableFor(collection string) (*csvTable, error) {
	switch collection {
	case "customers":
		var customers []models.Party
		if err := h.DB.Find(&customers).Error; err != nil {
			return nil, err
		}
		t := &csvTable{
			filename: "customers",
			header:   []string{"ID", "Name", "Phone", "Email", "Address", "Created At"},
		}
		for _, p := range customers {
			t.rows = append(t.rows, []string{
				p.ID, p.Name, p.Phone, p.Email, p.Address, p.CreatedAt.Format(time.RFC3339),
			})
		}
		return t, nil

	case "sales":
		var sales []models.Sale
		if err := h.DB.Find(&sales).Error; err != nil {
			return nil, err
		}
		t := &csvTable{
			filename: "sales",
			header: []string{
				"Bill Number", "Customer Name", "Item Name", "Quantity", "Gold Value",
				"Making Charges", "Subtotal", "Discount", "Total Amount",
				"Payment Method", "Payment Details", "Date",
			},
		}
		for _, s := range sales {
			t.rows = append(t.rows, []string{
				s.BillNumber, s.CustomerName, s.ItemName, strconv.Itoa(s.Quantity),
				fmtFloat(s.GoldValue), fmtFloat(s.MakingCharges), fmtFloat(s.Subtotal),
				fmtFloat(s.Discount), fmtFloat(s.TotalAmount),
				s.PaymentMethod, s.PaymentDetails, s.CreatedAt.Format(time.RFC3339),
			})
		}
		return t, nil

	case "purchases":
		var purchases []models.Purchase
		if err := h.DB.Find(&purchases).Error; err != nil {
			return nil, err
		}
		t := &csvTable{
			filename: "purchases",
			header: []string{
				"Purchase Number", "Seller Name", "Item Name", "Type", "Metal Type",
				"Weight (g)", "Purity", "Price/Gram", "Quantity", "Total Amount", "Date",
			},
		}
		for _, p := range purchases {
			t.rows = append(t.rows, []string{
				p.PurchaseNumber, p.SellerName, p.ItemName, p.Type, p.MetalType,
				fmtFloat(p.Weight), p.Purity, fmtFloat(p.PricePerGram),
				strconv.Itoa(p.Quantity), fmtFloat(p.TotalAmount),
				p.CreatedAt.Format(time.RFC3339),
			})
		}
		return t, nil

	case "inventory":
		var items []models.InventoryItem
		if err := h.DB.Find(&items).Error; err != nil {
			return nil, err
		}
		t := &csvTable{
			filename: "inventory",
			header: []string{
				"Name", "Type", "Metal Type", "Weight (g)", "Purity",
				"Price/Gram", "Quantity", "Total Value",
			},
		}
		for _, i := range items {
			t.rows = append(t.rows, []string{
				i.Name, i.Type, i.MetalType, fmtFloat(i.Weight), i.Purity,
				fmtFloat(i.PricePerGram), strconv.Itoa(i.Quantity), fmtFloat(i.TotalValue),
			})
		}
		return t, nil
	}

	return nil, fmt.Errorf("%w %q", errUnknownCollection, collection)
}

// ExportCSV streams one collection as CSV, selected by ?type=.
func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	collection := c.DefaultQuery("type", "customers")
	table, err := h.csvTableFor(collection)
	if err != nil {
		if errors.Is(err, errUnknownCollection) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown export type")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load data")
		}
		return
	}

	var sb strings.Builder
	sb.WriteString(csvHeader(table.header...))
	for _, row := range table.rows {
		sb.WriteString(csvLine(row...))
	}

	filename := fmt.Sprintf("%s-%s.csv", table.filename, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(sb.String()))
}

// ExportXLSX streams one collection as a spreadsheet, selected by
// ?type=.
func (h *ImportExportHandler) ExportXLSX(c *gin.Context) {
	collection := c.DefaultQuery("type", "customers")
	table, err := h.csvTableFor(collection)
	if err != nil {
		if errors.Is(err, errUnknownCollection) {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "unknown export type")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load data")
		}
		return
	}

	f := excelize.NewFile()
	sheetName := strings.ToUpper(table.filename[:1]) + table.filename[1:]
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, title := range table.header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, title)
	}
	for r, row := range table.rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.xlsx",
		table.filename, time.Now().Format("2006-01-02")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
