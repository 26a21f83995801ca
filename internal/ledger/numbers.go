package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// NextBillNumber returns the next sequential bill number, zero-padded to
// four digits. Existing values that do not parse as numbers (legacy
// records) count as zero. Single-writer only: uniqueness is guaranteed
// by calling inside the sale-commit transaction.
func NextBillNumber(existing []string) string {
	max := 0
	for _, n := range existing {
		v, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("%04d", max+1)
}

// NextPurchaseNumber returns the next sequential purchase number in
// "P0001" form. A leading "P" on existing values is stripped before
// parsing.
func NextPurchaseNumber(existing []string) string {
	max := 0
	for _, n := range existing {
		n = strings.TrimPrefix(strings.TrimSpace(n), "P")
		v, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return fmt.Sprintf("P%04d", max+1)
}
