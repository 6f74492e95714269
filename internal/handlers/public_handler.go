package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated lookups a sign-up page needs.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

type PublicBusiness struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Timezone string `json:"timezone"`
}

////////////////////////////////////////////////////////
// BUSINESS
////////////////////////////////////////////////////////

func (h *PublicHandler) GetBusiness(c *gin.Context) {
	slug := strings.ToLower(strings.TrimSpace(c.Param("slug")))

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeBusinessNotFound, "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Internal error.")
		return
	}

	httpresp.OK(c, PublicBusiness{
		ID:       biz.ID,
		Name:     biz.Name,
		Slug:     biz.Slug,
		Timezone: biz.Timezone,
	})
}
