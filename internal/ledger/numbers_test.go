package ledger

import "testing"

func TestNextBillNumber(t *testing.T) {
	testCases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "0001"},
		{"gaps", []string{"0001", "0003", "0007"}, "0008"},
		{"single", []string{"0042"}, "0043"},
		{"non numeric legacy treated as zero", []string{"OLD-12", ""}, "0001"},
		{"mixed legacy and numeric", []string{"legacy", "0009"}, "0010"},
		{"wider than four digits", []string{"9999"}, "10000"},
	}

	for _, tc := range testCases {
		got := NextBillNumber(tc.existing)
		if got != tc.want {
			t.Errorf("%s: NextBillNumber(%v) = %q, want %q", tc.name, tc.existing, got, tc.want)
		}
	}
}

func TestNextPurchaseNumber(t *testing.T) {
	testCases := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "P0001"},
		{"sequence", []string{"P0001", "P0002"}, "P0003"},
		{"gaps", []string{"P0001", "P0009"}, "P0010"},
		{"missing prefix still parses", []string{"0004"}, "P0005"},
		{"non numeric legacy treated as zero", []string{"Pabc"}, "P0001"},
	}

	for _, tc := range testCases {
		got := NextPurchaseNumber(tc.existing)
		if got != tc.want {
			t.Errorf("%s: NextPurchaseNumber(%v) = %q, want %q", tc.name, tc.existing, got, tc.want)
		}
	}
}
