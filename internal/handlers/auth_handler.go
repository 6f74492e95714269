package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/config"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
	"github.com/BruksfildServices01/petcrm/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher

	// emailDomainOK is swapped in tests to avoid DNS lookups.
	emailDomainOK func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, d *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		audit:         d,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	BusinessSlug string `json:"business_slug" binding:"required"`
	Timezone     string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AcceptInvitationRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

// --------- Responses ---------

func authResponse(user *models.User, biz *models.Business, token string) gin.H {
	out := gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"business_id": user.BusinessID,
		},
		"token": token,
	}
	if biz != nil {
		out["business"] = biz
	}
	return out
}

// --------- Handlers ---------

// Register creates a business together with its manager account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	slug, ok := validators.NormalizeSlug(req.BusinessSlug)
	if !ok {
		httperr.BadRequest(c, "invalid_slug", "Slug must use lowercase letters, digits and dashes.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.Default()
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	var count int64
	h.db.Model(&models.Business{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "This slug is already taken.")
		return
	}

	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "This email is already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Internal error.")
		return
	}

	biz := models.Business{
		Name:     strings.TrimSpace(req.BusinessName),
		Slug:     slug,
		Timezone: tz,
	}
	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&biz).Error; err != nil {
			return err
		}
		user = models.User{
			BusinessID:   &biz.ID,
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Role:         models.RoleManager,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_register", "Could not create the business.")
		return
	}

	token, err := middleware.SignToken(h.config, &user, 0)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: biz.ID,
		UserID:     &user.ID,
		Action:     "business_registered",
		Entity:     "business",
		EntityID:   &biz.ID,
	})

	httpresp.Created(c, authResponse(&user, &biz, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Preload("Business").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Internal error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	tutorID, err := h.tutorIDOf(&user)
	if err != nil {
		httperr.Unauthorized(c, "tutor_profile_missing", "This account has no tutor profile.")
		return
	}

	token, err := middleware.SignToken(h.config, &user, tutorID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	httpresp.OK(c, authResponse(&user, user.Business, token))
}

// tutorIDOf returns 0 for non-tutor users.
func (h *AuthHandler) tutorIDOf(user *models.User) (uint, error) {
	if user.Role != models.RoleTutor {
		return 0, nil
	}
	var tutor models.Tutor
	if err := h.db.Where("user_id = ?", user.ID).First(&tutor).Error; err != nil {
		return 0, err
	}
	return tutor.ID, nil
}

// AcceptInvitation turns an unused invitation into a staff or tutor
// account. A tutor record of the business with the invited email and no
// login yet is linked instead of creating a new one.
func (h *AuthHandler) AcceptInvitation(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		httperr.NotFound(c, "invitation_not_found", "Invitation not found.")
		return
	}

	var req AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Internal error.")
		return
	}

	var (
		inv     models.Invitation
		user    models.User
		tutorID uint
	)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, "token = ?", token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.Reject("invitation_not_found", "Invitation not found.")
			}
			return err
		}
		if inv.IsUsed() {
			return httperr.Reject("invitation_used", "This invitation has already been used.")
		}

		var count int64
		tx.Model(&models.User{}).Where("email = ?", inv.Email).Count(&count)
		if count > 0 {
			return httperr.Reject("email_already_exists", "This email is already registered.")
		}

		user = models.User{
			BusinessID:   &inv.BusinessID,
			Name:         strings.TrimSpace(req.Name),
			Email:        inv.Email,
			PasswordHash: string(hashed),
			Role:         inv.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if inv.Role == models.RoleTutor {
			id, err := linkTutor(tx, &inv, &user, req)
			if err != nil {
				return err
			}
			tutorID = id
		}

		now := time.Now()
		inv.UsedAt = &now
		inv.UsedByID = &user.ID
		return tx.Save(&inv).Error
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_accept_invitation")
		return
	}

	signed, err := middleware.SignToken(h.config, &user, tutorID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: inv.BusinessID,
		UserID:     &user.ID,
		Action:     "invitation_accepted",
		Entity:     "user",
		EntityID:   &user.ID,
		Metadata:   map[string]any{"role": inv.Role},
	})

	httpresp.Created(c, authResponse(&user, nil, signed))
}

func linkTutor(tx *gorm.DB, inv *models.Invitation, user *models.User, req AcceptInvitationRequest) (uint, error) {
	var tutor models.Tutor
	err := tx.Where("business_id = ? AND LOWER(email) = ? AND user_id IS NULL", inv.BusinessID, inv.Email).
		First(&tutor).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		tutor = models.Tutor{
			BusinessID: inv.BusinessID,
			UserID:     &user.ID,
			Name:       user.Name,
			Email:      inv.Email,
			Phone:      req.Phone,
		}
		err = tx.Create(&tutor).Error
	case err == nil:
		tutor.UserID = &user.ID
		err = tx.Save(&tutor).Error
	}
	return tutor.ID, err
}
