// Package qrtag encodes inventory items into the QR label payload
// printed on physical tags and decodes scanned payloads back. The
// payload is plain JSON; the QR transport treats it as opaque text.
package qrtag

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrMalformedPayload is returned when a scanned payload cannot be
// parsed. The scan event must be aborted; nothing is partially applied.
var ErrMalformedPayload = errors.New("malformed qr payload")

// Payload carries everything a handwritten tag would: the item's
// identity plus the attributes needed to price it on the spot.
type Payload struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	MetalType    string  `json:"metalType"`
	Weight       float64 `json:"weight"`
	Purity       string  `json:"purity"`
	PricePerGram float64 `json:"pricePerGram"`
	Quantity     int     `json:"quantity"`
	TotalValue   float64 `json:"totalValue"`
	CreatedAt    string  `json:"createdAt"`
}

// Encode serializes an inventory item into the canonical label payload.
func Encode(item *models.InventoryItem) (string, error) {
	p := Payload{
		ID:           item.ID,
		Name:         item.Name,
		Type:         item.Type,
		MetalType:    item.MetalType,
		Weight:       item.Weight,
		Purity:       item.Purity,
		PricePerGram: item.PricePerGram,
		Quantity:     item.Quantity,
		TotalValue:   item.TotalValue,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(b), nil
}

// Decode parses a scanned payload. The payload is the sole source of
// truth at scan time, so beyond successful parsing and a present id no
// schema validation is applied.
func Decode(data string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: missing item id", ErrMalformedPayload)
	}
	return &p, nil
}

// ImageFunc renders an encoded payload into an image. Handlers take it
// as a dependency so label generation can be tested without rendering.
type ImageFunc func(data string, size int) ([]byte, error)

// PNGImage is the default renderer: a medium error-correction PNG.
func PNGImage(data string, size int) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, size)
}
