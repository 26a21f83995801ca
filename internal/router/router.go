package router

import (
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/config"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/handler"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the API surface.
// Auth endpoints are public; everything else sits behind the session
// token.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.GET("/auth/status", authHandler.Status)
	api.POST("/auth/setup", authHandler.Setup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/reset-password", authHandler.ResetPassword)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret))

	protected.GET("/me", authHandler.Me)

	partyHandler := handler.NewPartyHandler(db)
	protected.GET("/customers", partyHandler.List)
	protected.POST("/customers", partyHandler.Create)
	protected.PUT("/customers/:id", partyHandler.Update)
	protected.DELETE("/customers/:id", partyHandler.Delete)

	inventoryHandler := handler.NewInventoryHandler(db, nil)
	protected.GET("/inventory", inventoryHandler.List)
	protected.POST("/inventory", inventoryHandler.Create)
	protected.PUT("/inventory/:id", inventoryHandler.Update)
	protected.DELETE("/inventory/:id", inventoryHandler.Delete)
	protected.GET("/inventory/:id/qrcode", inventoryHandler.QRCode)

	saleHandler := handler.NewSaleHandler(db)
	protected.GET("/sales", saleHandler.List)
	protected.GET("/sales/:id", saleHandler.Get)
	protected.POST("/sales", saleHandler.Create)
	protected.PUT("/sales/:id", saleHandler.Update)
	protected.DELETE("/sales/:id", saleHandler.Delete)

	purchaseHandler := handler.NewPurchaseHandler(db)
	protected.GET("/purchases", purchaseHandler.List)
	protected.GET("/purchases/:id", purchaseHandler.Get)
	protected.POST("/purchases", purchaseHandler.Create)
	protected.PUT("/purchases/:id", purchaseHandler.Update)
	protected.DELETE("/purchases/:id", purchaseHandler.Delete)

	rateHandler := handler.NewRateHandler(db)
	protected.GET("/rates/gold", rateHandler.ListGold)
	protected.GET("/rates/gold/current", rateHandler.CurrentGold)
	protected.POST("/rates/gold", rateHandler.SetGold)
	protected.DELETE("/rates/gold/:id", rateHandler.DeleteGold)
	protected.GET("/rates/silver", rateHandler.ListSilver)
	protected.GET("/rates/silver/current", rateHandler.CurrentSilver)
	protected.POST("/rates/silver", rateHandler.SetSilver)
	protected.DELETE("/rates/silver/:id", rateHandler.DeleteSilver)

	scanHandler := handler.NewScanHandler(db)
	protected.POST("/scan", scanHandler.Record)
	protected.GET("/scan/session", scanHandler.Session)
	protected.DELETE("/scan/session", scanHandler.ClearSession)
	protected.POST("/physical-reports", scanHandler.GenerateReport)
	protected.GET("/physical-reports", scanHandler.ListReports)
	protected.GET("/physical-reports/:id", scanHandler.GetReport)
	protected.DELETE("/physical-reports/:id", scanHandler.DeleteReport)
	protected.GET("/physical-reports/:id/export", scanHandler.ExportReport)

	statsHandler := handler.NewStatsHandler(db)
	protected.GET("/stats/dashboard", statsHandler.Dashboard)

	importExportHandler := handler.NewImportExportHandler(db)
	protected.GET("/export/json", importExportHandler.ExportJSON)
	protected.POST("/import/json", importExportHandler.ImportJSON)
	protected.GET("/export/csv", importExportHandler.ExportCSV)
	protected.GET("/export/xlsx", importExportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Security.EncryptionKey, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	return r
}
