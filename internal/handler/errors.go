package handler

import (
	"errors"
	"net/http"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/ledger"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// translateGorm folds gorm lookup errors into the ledger taxonomy so
// handlers that query directly share one error path.
func translateGorm(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrNotFound
	}
	return err
}

// writeLedgerError maps the ledger error taxonomy onto the response
// envelope.
func writeLedgerError(c *gin.Context, err error) {
	var ve *ledger.ValidationError
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "record not found")
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ve.Msg)
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "operation failed")
	}
}
