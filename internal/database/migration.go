package database

import (
	"fmt"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ShopInfo{},
		&models.Party{},
		&models.InventoryItem{},
		&models.Sale{},
		&models.Purchase{},
		&models.GoldRate{},
		&models.SilverRate{},
		&models.PhysicalCount{},
		&models.PhysicalReport{},
		&models.PhysicalReportCount{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
