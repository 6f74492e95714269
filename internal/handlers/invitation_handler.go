package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/validators"
)

type InvitationHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewInvitationHandler(db *gorm.DB, d *audit.Dispatcher) *InvitationHandler {
	return &InvitationHandler{db: db, audit: d}
}

type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=staff tutor"`
}

// Create invites a tutor, or a staff member when the caller is a manager.
func (h *InvitationHandler) Create(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A valid email and a role of staff or tutor are required.")
		return
	}

	if req.Role == models.RoleStaff {
		if s, isStaff := a.(actor.Staff); isStaff && !s.Manager {
			httperr.Forbidden(c, httperr.CodeForbidden, "Only managers can invite staff.")
			return
		}
	}

	inv := models.Invitation{
		Token:      uuid.New(),
		BusinessID: businessID,
		Email:      validators.NormalizeEmail(req.Email),
		Role:       req.Role,
	}

	if err := h.db.Create(&inv).Error; err != nil {
		if httperr.IsUniqueViolation(err, "") {
			httperr.BadRequest(c, "invitation_exists", "This email has already been invited.")
			return
		}
		httperr.Internal(c, "failed_to_create_invitation", "Could not create the invitation.")
		return
	}

	uid := actor.UserIDOf(a)
	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &uid,
		Action:     "invitation_created",
		Entity:     "invitation",
		Metadata:   map[string]any{"email": inv.Email, "role": inv.Role},
	})

	httpresp.Created(c, inv)
}

func (h *InvitationHandler) List(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var invitations []models.Invitation
	if err := h.db.
		Where("business_id = ?", businessID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {

		httperr.Internal(c, "failed_to_list_invitations", "Could not list invitations.")
		return
	}

	httpresp.OK(c, invitations)
}
