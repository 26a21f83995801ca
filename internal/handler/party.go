package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/KishoriRaut/siscora-goldshop-crm/internal/models"
	"github.com/KishoriRaut/siscora-goldshop-crm/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartyHandler manages customer and seller records.
type PartyHandler struct {
	DB *gorm.DB
}

func NewPartyHandler(db *gorm.DB) *PartyHandler {
	return &PartyHandler{DB: db}
}

type partyReq struct {
	Name    string `json:"name" binding:"required,max=128"`
	Phone   string `json:"phone" binding:"max=32"`
	Email   string `json:"email" binding:"max=128"`
	Address string `json:"address" binding:"max=255"`
	Role    string `json:"role" binding:"omitempty,oneof=customer seller both"`
}

// List returns parties, optionally filtered by role and a name/phone
// search term. A role filter also matches parties tagged "both".
func (h *PartyHandler) List(c *gin.Context) {
	q := h.DB.Model(&models.Party{})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ? OR role = ?", role, models.RoleBoth)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR phone LIKE ?", like, like)
	}

	var parties []models.Party
	if err := q.Order("created_at DESC").Find(&parties).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load parties")
		return
	}

	util.Success(c, util.Response{"items": parties, "total": len(parties)})
}

func (h *PartyHandler) Create(c *gin.Context) {
	var req partyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	party := models.Party{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Address:   strings.TrimSpace(req.Address),
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := h.DB.Create(&party).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save party")
		return
	}

	util.Success(c, util.Response{"party": party})
}

func (h *PartyHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req partyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var party models.Party
	if err := h.DB.Where("id = ?", id).First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "party not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load party")
		}
		return
	}

	party.Name = strings.TrimSpace(req.Name)
	party.Phone = strings.TrimSpace(req.Phone)
	party.Email = strings.TrimSpace(req.Email)
	party.Address = strings.TrimSpace(req.Address)
	if req.Role != "" {
		party.Role = req.Role
	}

	if err := h.DB.Save(&party).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save party")
		return
	}

	util.Success(c, util.Response{"party": party})
}

func (h *PartyHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	res := h.DB.Delete(&models.Party{}, "id = ?", id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete party")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "party not found")
		return
	}

	util.Success(c, util.Response{"message": "party deleted"})
}
