package handler

import (
	"net/http"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the dashboard aggregates.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// Dashboard returns the shop-wide counters and sums shown on the
// landing screen. Net position is revenue minus purchase spend.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	var (
		totalCustomers      int64
		totalItems          int64
		totalSales          int64
		totalPurchases      int64
		totalRevenue        float64
		totalMakingCharges  float64
		totalPurchaseAmount float64
		inventoryValue      float64
	)

	type sum struct {
		model interface{}
		expr  string
		dst   *float64
	}

	// sellers-only parties are purchase counterparties, not customers
	if err := h.DB.Model(&models.Party{}).
		Where("role IN ?", []string{models.RoleCustomer, models.RoleBoth}).
		Count(&totalCustomers).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load stats")
		return
	}

	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&models.InventoryItem{}, &totalItems},
		{&models.Sale{}, &totalSales},
		{&models.Purchase{}, &totalPurchases},
	}
	for _, q := range counts {
		if err := h.DB.Model(q.model).Count(q.dst).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load stats")
			return
		}
	}

	sums := []sum{
		{&models.Sale{}, "COALESCE(SUM(total_amount), 0)", &totalRevenue},
		{&models.Sale{}, "COALESCE(SUM(making_charges), 0)", &totalMakingCharges},
		{&models.Purchase{}, "COALESCE(SUM(total_amount), 0)", &totalPurchaseAmount},
		{&models.InventoryItem{}, "COALESCE(SUM(total_value), 0)", &inventoryValue},
	}
	for _, q := range sums {
		row := h.DB.Model(q.model).Select(q.expr).Row()
		if err := row.Scan(q.dst); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load stats")
			return
		}
	}

	var (
		todaySales   int64
		todayRevenue float64
	)
	today := time.Now().Format("2006-01-02")
	if err := h.DB.Model(&models.Sale{}).Where("date(created_at) = ?", today).Count(&todaySales).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load stats")
		return
	}
	row := h.DB.Model(&models.Sale{}).Where("date(created_at) = ?", today).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&todayRevenue); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load stats")
		return
	}

	util.Success(c, util.Response{
		"totalCustomers":      totalCustomers,
		"totalItems":          totalItems,
		"totalSales":          totalSales,
		"totalRevenue":        totalRevenue,
		"totalMakingCharges":  totalMakingCharges,
		"totalPurchases":      totalPurchases,
		"totalPurchaseAmount": totalPurchaseAmount,
		"inventoryValue":      inventoryValue,
		"todaySales":          todaySales,
		"todayRevenue":        todayRevenue,
		"netPosition":         totalRevenue - totalPurchaseAmount,
	})
}
