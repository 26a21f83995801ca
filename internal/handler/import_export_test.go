package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
)

func TestCSVLineQuoting(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{"plain", []string{"a", "b"}, "\"a\",\"b\"\n"},
		{"embedded comma", []string{"Ring, gold", "x"}, "\"Ring, gold\",\"x\"\n"},
		{"embedded quote", []string{`22" chain`}, "\"22\"\" chain\"\n"},
		{"empty field", []string{"", "x"}, "\"\",\"x\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := csvLine(tt.fields...); got != tt.want {
				t.Errorf("csvLine(%v) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestExportCSVInventory(t *testing.T) {
	db := testDB(t)
	seedTestItem(t, db, "item-1", `Gold "Classic" Ring`, 10, 5000, 2)

	h := NewImportExportHandler(db)
	w := doGet(t, h.ExportCSV, "/api/export/csv?type=inventory", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}

	wantHeader := "Name,Type,Metal Type,Weight (g),Purity,Price/Gram,Quantity,Total Value"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow := `"Gold ""Classic"" Ring","Ring","gold","10","22K","5000","2","100000"`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestExportCSVSalesHeader(t *testing.T) {
	db := testDB(t)
	h := NewImportExportHandler(db)
	w := doGet(t, h.ExportCSV, "/api/export/csv?type=sales", nil)

	wantHeader := "Bill Number,Customer Name,Item Name,Quantity,Gold Value,Making Charges,Subtotal,Discount,Total Amount,Payment Method,Payment Details,Date"
	got := strings.SplitN(w.Body.String(), "\n", 2)[0]
	if got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
}

func TestExportCSVUnknownType(t *testing.T) {
	db := testDB(t)
	h := NewImportExportHandler(db)
	w := doGet(t, h.ExportCSV, "/api/export/csv?type=nonsense", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// A failure reading a known collection is a server error, not a bad
// request.
func TestExportCSVReadFailure(t *testing.T) {
	db := testDB(t)
	if err := db.Migrator().DropTable(&models.InventoryItem{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	h := NewImportExportHandler(db)
	w := doGet(t, h.ExportCSV, "/api/export/csv?type=inventory", nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestExportJSONShape(t *testing.T) {
	db := testDB(t)
	seedTestItem(t, db, "item-1", "Gold Ring", 10, 5000, 1)

	h := NewImportExportHandler(db)
	w := doGet(t, h.ExportJSON, "/api/export/json", nil)

	body := decodeBody(t, w)
	for _, key := range []string{"customers", "inventory", "sales", "purchases", "goldRates", "silverRates", "exportDate"} {
		if _, ok := body[key]; !ok {
			t.Errorf("export missing key %q", key)
		}
	}
	if body["version"] != "1.0" {
		t.Errorf("version = %v, want 1.0", body["version"])
	}
	inventory, ok := body["inventory"].([]interface{})
	if !ok || len(inventory) != 1 {
		t.Errorf("inventory = %v, want one item", body["inventory"])
	}
}

// Import replaces exactly the collections present in the file and
// leaves the rest alone.
func TestImportJSONReplacesOnlyPresentKeys(t *testing.T) {
	db := testDB(t)
	seedTestItem(t, db, "item-old", "Old Ring", 10, 5000, 1)
	if err := db.Create(&models.Party{ID: "cust-old", Name: "Old Customer", Role: models.RoleCustomer, CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	h := NewImportExportHandler(db)
	w := doJSON(t, h.ImportJSON, http.MethodPost, "/api/import/json", map[string]interface{}{
		"customers": []map[string]interface{}{
			{"id": "cust-new", "name": "New Customer", "role": "customer"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var customers []models.Party
	if err := db.Find(&customers).Error; err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "cust-new" {
		t.Errorf("customers = %v, want only cust-new", customers)
	}

	var items int64
	db.Model(&models.InventoryItem{}).Count(&items)
	if items != 1 {
		t.Errorf("inventory rows = %d, want untouched 1", items)
	}
}

// A file that fails partway through must leave every table as it was.
func TestImportJSONAllOrNothing(t *testing.T) {
	db := testDB(t)
	if err := db.Create(&models.Party{ID: "cust-old", Name: "Old Customer", Role: models.RoleCustomer, CreatedAt: time.Now()}).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	h := NewImportExportHandler(db)
	// duplicate primary keys make the insert fail after the delete
	w := doJSON(t, h.ImportJSON, http.MethodPost, "/api/import/json", map[string]interface{}{
		"customers": []map[string]interface{}{
			{"id": "dup", "name": "First", "role": "customer"},
			{"id": "dup", "name": "Second", "role": "customer"},
		},
	})
	if w.Code == http.StatusOK {
		t.Fatalf("import succeeded, want failure")
	}

	var customers []models.Party
	if err := db.Find(&customers).Error; err != nil {
		t.Fatalf("load customers: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "cust-old" {
		t.Errorf("customers = %v, want original cust-old preserved", customers)
	}
}
