package qrtag

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
)

func testItem() *models.InventoryItem {
	return &models.InventoryItem{
		ID:           "item-42",
		Name:         "Gold Ring",
		Type:         "Ring",
		MetalType:    models.MetalGold,
		Weight:       11.664, // one tola
		Purity:       "22K",
		PricePerGram: 158000.50,
		Quantity:     3,
		TotalValue:   11.664 * 158000.50 * 3,
		CreatedAt:    time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	item := testItem()

	data, err := Encode(item)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	p, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if p.ID != item.ID {
		t.Errorf("id = %q, want %q", p.ID, item.ID)
	}
	if p.Weight != item.Weight {
		t.Errorf("weight = %f, want %f", p.Weight, item.Weight)
	}
	if p.Purity != item.Purity {
		t.Errorf("purity = %q, want %q", p.Purity, item.Purity)
	}
	if p.PricePerGram != item.PricePerGram {
		t.Errorf("pricePerGram = %f, want %f", p.PricePerGram, item.PricePerGram)
	}
	if p.Quantity != item.Quantity {
		t.Errorf("quantity = %d, want %d", p.Quantity, item.Quantity)
	}
	if p.TotalValue != item.TotalValue {
		t.Errorf("totalValue = %f, want %f", p.TotalValue, item.TotalValue)
	}
	if p.CreatedAt != "2025-03-14T09:30:00Z" {
		t.Errorf("createdAt = %q", p.CreatedAt)
	}
}

func TestEncode_FieldOrder(t *testing.T) {
	data, err := Encode(testItem())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	// canonical serialization starts with the identity field
	if !strings.HasPrefix(data, `{"id":"item-42"`) {
		t.Errorf("payload does not lead with id: %s", data)
	}
}

func TestDecode_Malformed(t *testing.T) {
	testCases := []string{
		"",
		"not json",
		"{truncated",
		`[1,2,3]`,
		`{"name":"no id"}`,
	}

	for _, data := range testCases {
		p, err := Decode(data)
		if !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformedPayload", data, err)
		}
		if p != nil {
			t.Errorf("Decode(%q) = %+v, want nil", data, p)
		}
	}
}

func TestPNGImage(t *testing.T) {
	data, _ := Encode(testItem())

	png, err := PNGImage(data, 300)
	if err != nil {
		t.Fatalf("PNGImage() error = %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty image")
	}
	// PNG signature
	if png[0] != 0x89 || string(png[1:4]) != "PNG" {
		t.Error("output is not a PNG")
	}
}
