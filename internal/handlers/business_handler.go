package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessRequest struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
}

func (h *BusinessHandler) load(c *gin.Context) (*models.Business, bool) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return nil, false
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeBusinessNotFound, "Business not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_business", "Internal error.")
		return nil, false
	}
	return &biz, true
}

func (h *BusinessHandler) Get(c *gin.Context) {
	biz, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, biz)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	biz, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Name must not be empty.")
			return
		}
		biz.Name = name
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		biz.Timezone = *req.Timezone
	}

	if err := h.db.Save(biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save the business.")
		return
	}

	httpresp.OK(c, biz)
}
