package util

import (
	"fmt"
	"time"
)

// ValidateWeight validates a per-unit weight in grams.
func ValidateWeight(weight float64) error {
	if weight <= 0 {
		return fmt.Errorf("weight must be positive, got %f", weight)
	}
	if weight >= 100000 { // 100 kg, nothing in a jewelry shop weighs this
		return fmt.Errorf("weight too large, got %f", weight)
	}
	return nil
}

// ValidateRate validates a per-gram price.
func ValidateRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("rate must be positive, got %f", rate)
	}
	if rate >= 10000000 {
		return fmt.Errorf("rate too large, got %f", rate)
	}
	return nil
}

// ValidateDate validates a YYYY-MM-DD date string.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMetalType validates a metal type label.
func ValidateMetalType(metal string) error {
	if metal != "gold" && metal != "silver" {
		return fmt.Errorf("metal type must be gold or silver, got %q", metal)
	}
	return nil
}

// ValidatePaymentMethod validates a payment method label.
func ValidatePaymentMethod(method string) error {
	switch method {
	case "cash", "card", "esewa", "khalti", "other":
		return nil
	}
	return fmt.Errorf("invalid payment method %q", method)
}
