package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes encrypted on-disk snapshots of every business
// collection and restores them. Snapshots are AES encrypted with the
// configured key, so a copied backup file is useless without it.
type BackupHandler struct {
	DB         *gorm.DB
	EncryptKey string
	BackupDir  string
}

func NewBackupHandler(db *gorm.DB, encryptKey, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
	}
}

// backupData is the content written to a backup file.
type backupData struct {
	Created time.Time `json:"created"`
	Version string    `json:"version"`
	dataBundle
}

// CreateBackup snapshots all collections into an encrypted file and
// records it.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	bundle, err := loadBundle(h.DB)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load data")
		return
	}

	data := backupData{
		Created:    time.Now(),
		Version:    "1.0",
		dataBundle: *bundle,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to serialize data")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encrypt backup")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	fileName := fmt.Sprintf("backup-%s.bin", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup file")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to record backup")
		return
	}

	util.Success(c, util.Response{"backup": backup})
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backups")
		return
	}
	util.Success(c, util.Response{"backups": list, "total": len(list)})
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	var backup models.Backup
	if err := h.DB.Where("id = ?", c.Param("id")).First(&backup).Error; err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	var backup models.Backup
	if err := h.DB.Where("id = ?", c.Param("id")).First(&backup).Error; err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}

	// file first, then the record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(&backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete backup")
		return
	}

	util.Success(c, util.Response{"message": "backup deleted"})
}

// RestoreBackup decrypts a backup file and replaces every business
// collection with its contents in one transaction.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	var backup models.Backup
	if err := h.DB.Where("id = ?", c.Param("id")).First(&backup).Error; err != nil {
		writeLedgerError(c, translateGorm(err))
		return
	}

	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read backup file")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to decrypt backup file")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to parse backup data")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := replaceCollection(tx, data.Customers); err != nil {
			return err
		}
		if err := replaceCollection(tx, data.Inventory); err != nil {
			return err
		}
		if err := replaceCollection(tx, data.Sales); err != nil {
			return err
		}
		if err := replaceCollection(tx, data.Purchases); err != nil {
			return err
		}
		if err := replaceCollection(tx, data.GoldRates); err != nil {
			return err
		}
		return replaceCollection(tx, data.SilverRates)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed, no changes applied")
		return
	}

	util.Success(c, util.Response{"message": "backup restored"})
}
