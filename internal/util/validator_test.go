package util

import (
	"testing"
)

func TestValidateWeight_Positive(t *testing.T) {
	testCases := []float64{0.1, 1.0, 11.664, 99999.99}

	for _, w := range testCases {
		err := ValidateWeight(w)
		if err != nil {
			t.Errorf("ValidateWeight(%f) error = %v, want nil", w, err)
		}
	}
}

func TestValidateWeight_Invalid(t *testing.T) {
	testCases := []float64{0, -0.01, -100, 100000}

	for _, w := range testCases {
		err := ValidateWeight(w)
		if err == nil {
			t.Errorf("ValidateWeight(%f) error = nil, want error", w)
		}
	}
}

func TestValidateRate(t *testing.T) {
	if err := ValidateRate(158000.50); err != nil {
		t.Errorf("ValidateRate(158000.50) error = %v, want nil", err)
	}
	for _, r := range []float64{0, -1, 10000000} {
		if err := ValidateRate(r); err == nil {
			t.Errorf("ValidateRate(%f) error = nil, want error", r)
		}
	}
}

func TestValidateDate_Valid(t *testing.T) {
	testCases := []string{
		"2024-01-01",
		"2024-12-31",
		"2025-06-15",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}
}

func TestValidateDate_InvalidFormat(t *testing.T) {
	testCases := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}

	for _, date := range testCases {
		err := ValidateDate(date)
		if err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateMetalType(t *testing.T) {
	for _, m := range []string{"gold", "silver"} {
		if err := ValidateMetalType(m); err != nil {
			t.Errorf("ValidateMetalType(%q) error = %v, want nil", m, err)
		}
	}
	for _, m := range []string{"", "Gold", "platinum"} {
		if err := ValidateMetalType(m); err == nil {
			t.Errorf("ValidateMetalType(%q) error = nil, want error", m)
		}
	}
}

func TestValidatePaymentMethod(t *testing.T) {
	for _, m := range []string{"cash", "card", "esewa", "khalti", "other"} {
		if err := ValidatePaymentMethod(m); err != nil {
			t.Errorf("ValidatePaymentMethod(%q) error = %v, want nil", m, err)
		}
	}
	for _, m := range []string{"", "cheque", "CASH"} {
		if err := ValidatePaymentMethod(m); err == nil {
			t.Errorf("ValidatePaymentMethod(%q) error = nil, want error", m)
		}
	}
}
