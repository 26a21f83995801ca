package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced party, item or transaction
// no longer exists (e.g. a stale selection or a deleted record).
var ErrNotFound = errors.New("record not found")

// ValidationError reports user input that fails a precondition. It is
// always raised before any write; a failed validation leaves no partial
// state behind.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ReversalWarning signals that a purchase edit/delete could not exactly
// identify the inventory item it had materialized and fell back to
// attribute matching. The operation still completes; the warning is
// surfaced to the caller.
type ReversalWarning struct {
	PurchaseID string
	Matched    int
}

func (w *ReversalWarning) Error() string {
	return fmt.Sprintf("purchase %s: inventory link ambiguous, attribute matching removed %d item(s)", w.PurchaseID, w.Matched)
}
