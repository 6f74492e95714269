package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/models"
	petuc "github.com/BruksfildServices01/petcrm/internal/usecase/pet"
	"github.com/BruksfildServices01/petcrm/internal/validators"
)

type TutorHandler struct {
	db      *gorm.DB
	profile *petuc.UpdateTutorProfile
}

func NewTutorHandler(db *gorm.DB, profile *petuc.UpdateTutorProfile) *TutorHandler {
	return &TutorHandler{db: db, profile: profile}
}

type CreateTutorRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ======================================================
// LIST TUTORS (STAFF)
// ======================================================
func (h *TutorHandler) List(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("business_id = ?", businessID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var tutors []models.Tutor
	if err := q.
		Order("name ASC").
		Find(&tutors).Error; err != nil {

		httperr.Internal(c, "failed_to_list_tutors", "Could not list tutors.")
		return
	}

	httpresp.OK(c, tutors)
}

func (h *TutorHandler) Create(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var req CreateTutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name is required.")
		return
	}

	tutor := models.Tutor{
		BusinessID: businessID,
		Name:       strings.TrimSpace(req.Name),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      validators.NormalizeEmail(req.Email),
		Address:    req.Address,
		Notes:      req.Notes,
	}

	if err := h.db.Create(&tutor).Error; err != nil {
		httperr.Internal(c, "failed_to_create_tutor", "Could not create the tutor.")
		return
	}

	httpresp.Created(c, tutor)
}

// UpdateProfile is the tutor's own contact details edit.
func (h *TutorHandler) UpdateProfile(c *gin.Context) {
	var patch petdomain.TutorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	tutor, err := h.profile.Execute(c.Request.Context(), middleware.ActorFrom(c), patch)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_tutor")
		return
	}
	httpresp.OK(c, tutor)
}
