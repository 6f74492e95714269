package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	a := middleware.ActorFrom(c)
	if a == nil {
		httperr.Unauthorized(c, "actor_not_in_context", "Not authenticated.")
		return
	}

	var user models.User
	if err := h.db.Preload("Business").First(&user, actor.UserIDOf(a)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	out := gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"business_id": user.BusinessID,
		},
		"actor":    actor.Kind(a),
		"business": user.Business,
	}

	if t, ok := a.(actor.Tutor); ok {
		var tutor models.Tutor
		if err := h.db.First(&tutor, t.TutorID).Error; err == nil {
			out["tutor"] = tutor
		}
	}

	httpresp.OK(c, out)
}
