package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler implements the single-operator credential gate: one-time
// shop setup, login and password reset.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

func (h *AuthHandler) shopInfo() (*models.ShopInfo, error) {
	var info models.ShopInfo
	if err := h.DB.First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

type setupReq struct {
	ShopName         string `json:"shop_name" binding:"required,max=128"`
	Address          string `json:"address" binding:"max=255"`
	Password         string `json:"password" binding:"required,min=6,max=64"`
	ConfirmPassword  string `json:"confirm_password" binding:"required"`
	SecurityQuestion string `json:"security_question" binding:"max=255"`
	SecurityAnswer   string `json:"security_answer" binding:"max=128"`
}

// Setup creates the one-and-only shop record. Re-running setup on an
// already configured shop is rejected.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req setupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "passwords do not match")
		return
	}

	if _, err := h.shopInfo(); err == nil {
		util.Error(c, http.StatusConflict, util.CodeConflict, "shop is already set up")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check setup state")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	info := models.ShopInfo{
		ShopName:         strings.TrimSpace(req.ShopName),
		Address:          strings.TrimSpace(req.Address),
		PasswordHash:     string(hash),
		SecurityQuestion: req.SecurityQuestion,
		SetupCompleted:   true,
		SetupDate:        time.Now(),
	}
	if req.SecurityAnswer != "" {
		answerHash, err := util.HashSecret(strings.ToLower(strings.TrimSpace(req.SecurityAnswer)))
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash security answer")
			return
		}
		info.SecurityAnswerHash = answerHash
	}

	if err := h.DB.Create(&info).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save shop info")
		return
	}

	util.Success(c, util.Response{
		"message": "setup completed",
		"shop":    info,
	})
}

type loginReq struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the shop password and issues the operator session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	info, err := h.shopInfo()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "shop is not set up yet")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load shop info")
		}
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(info.PasswordHash), []byte(req.Password)) != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "incorrect password")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, info.ShopName, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	util.Success(c, util.Response{
		"token":      token,
		"expires_in": int(h.TokenTTL.Seconds()),
		"shop":       info,
	})
}

type resetPasswordReq struct {
	ShopName       string `json:"shop_name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	SecurityAnswer string `json:"security_answer"`
	NewPassword    string `json:"new_password" binding:"required,min=6,max=64"`
}

// ResetPassword replaces the shop password after verifying the shop name
// and address (case-insensitive), plus the security answer when one was
// configured at setup.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	info, err := h.shopInfo()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "shop is not set up yet")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load shop info")
		}
		return
	}

	nameMatch := strings.EqualFold(strings.TrimSpace(info.ShopName), strings.TrimSpace(req.ShopName))
	addressMatch := strings.EqualFold(strings.TrimSpace(info.Address), strings.TrimSpace(req.Address))
	if !nameMatch || !addressMatch {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "shop name or address does not match")
		return
	}
	if info.SecurityAnswerHash != "" &&
		!util.CheckSecret(strings.ToLower(strings.TrimSpace(req.SecurityAnswer)), info.SecurityAnswerHash) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "security answer does not match")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to hash password")
		return
	}

	info.PasswordHash = string(hash)
	if err := h.DB.Save(info).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save password")
		return
	}

	util.Success(c, util.Response{
		"message": "password reset",
	})
}

// Status reports whether setup has completed, so the client knows
// whether to show the setup or login screen.
func (h *AuthHandler) Status(c *gin.Context) {
	info, err := h.shopInfo()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Success(c, util.Response{"setup_completed": false})
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load shop info")
		return
	}

	util.Success(c, util.Response{
		"setup_completed":   info.SetupCompleted,
		"shop_name":         info.ShopName,
		"security_question": info.SecurityQuestion,
	})
}

// Me returns the shop profile of the authenticated operator.
func (h *AuthHandler) Me(c *gin.Context) {
	info, err := h.shopInfo()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load shop info")
		return
	}
	util.Success(c, util.Response{"shop": info})
}
