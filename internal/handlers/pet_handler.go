package handlers

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/httpresp"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	"github.com/BruksfildServices01/petcrm/internal/models"
	petuc "github.com/BruksfildServices01/petcrm/internal/usecase/pet"
)

type PetHandler struct {
	db       *gorm.DB
	repo     petdomain.Repository
	presence *petuc.UpdatePresence
	training *petuc.AddTrainingEntry
	log      *petuc.ListTrainingEntries
	ownPet   *petuc.UpdateOwnPet
}

func NewPetHandler(
	db *gorm.DB,
	repo petdomain.Repository,
	presence *petuc.UpdatePresence,
	training *petuc.AddTrainingEntry,
	log *petuc.ListTrainingEntries,
	ownPet *petuc.UpdateOwnPet,
) *PetHandler {
	return &PetHandler{
		db:       db,
		repo:     repo,
		presence: presence,
		training: training,
		log:      log,
		ownPet:   ownPet,
	}
}

type PetRequest struct {
	petdomain.Patch
	TutorIDs []uint `json:"tutor_ids"`
}

// ======================================================
// LIST
// ======================================================

// List returns every pet of the business for staff and the tutor's own
// pets for tutors, each with its check-in state.
func (h *PetHandler) List(c *gin.Context) {
	a, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	f := petdomain.Filter{BusinessID: businessID}
	if t, isTutor := a.(actor.Tutor); isTutor {
		id := t.TutorID
		f.TutorID = &id
	}

	pets, err := h.repo.ListPets(c.Request.Context(), f)
	if err != nil {
		httperr.FromError(c, err, "pet_list_failed")
		return
	}

	ids := make([]uint, 0, len(pets))
	for _, p := range pets {
		ids = append(ids, p.ID)
	}
	checkIns, err := h.repo.ListCheckIns(c.Request.Context(), ids)
	if err != nil {
		httperr.FromError(c, err, "pet_list_failed")
		return
	}

	httpresp.List(c, petdomain.Statuses(pets, checkIns))
}

// ======================================================
// CREATE / UPDATE (STAFF)
// ======================================================

func (h *PetHandler) Create(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	pet := models.Pet{BusinessID: businessID, Sex: "unknown"}
	if err := req.Apply(&pet); err != nil {
		httperr.FromError(c, err, "invalid_request")
		return
	}
	if pet.Name == "" {
		httperr.BadRequest(c, "invalid_name", "Name is required.")
		return
	}

	tutors, ok := h.tutors(c, businessID, req.TutorIDs)
	if !ok {
		return
	}
	pet.Tutors = tutors

	if err := h.db.Create(&pet).Error; err != nil {
		httperr.Internal(c, "failed_to_create_pet", "Could not create the pet.")
		return
	}

	httpresp.Created(c, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	_, businessID, ok := businessScope(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var pet models.Pet
	if err := h.db.Where("id = ? AND business_id = ?", id, businessID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodePetNotFound, "Pet not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_pet", "Internal error.")
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}
	if err := req.Apply(&pet); err != nil {
		httperr.FromError(c, err, "invalid_request")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tutors").Save(&pet).Error; err != nil {
			return err
		}
		if req.TutorIDs == nil {
			return nil
		}
		tutors, ok := h.tutors(c, businessID, req.TutorIDs)
		if !ok {
			return errTutorsRejected
		}
		return tx.Model(&pet).Association("Tutors").Replace(tutors)
	})
	if errors.Is(err, errTutorsRejected) {
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_update_pet", "Could not save the pet.")
		return
	}

	httpresp.OK(c, pet)
}

var errTutorsRejected = errors.New("tutors rejected")

// tutors loads the given tutors and rejects ids outside the business.
func (h *PetHandler) tutors(c *gin.Context, businessID uint, ids []uint) ([]models.Tutor, bool) {
	if len(ids) == 0 {
		return nil, true
	}
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))

	var tutors []models.Tutor
	if err := h.db.Where("id IN ? AND business_id = ?", ids, businessID).Find(&tutors).Error; err != nil {
		httperr.Internal(c, "failed_to_load_tutors", "Internal error.")
		return nil, false
	}
	if len(tutors) != len(ids) {
		httperr.BadRequest(c, httperr.CodeTutorNotFound, "Unknown tutor.")
		return nil, false
	}
	return tutors, true
}

// ======================================================
// CHECK-IN
// ======================================================

func (h *PetHandler) CheckIn(c *gin.Context) {
	h.setPresence(c, true)
}

func (h *PetHandler) CheckOut(c *gin.Context) {
	h.setPresence(c, false)
}

func (h *PetHandler) setPresence(c *gin.Context, present bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ci, err := h.presence.Execute(c.Request.Context(), middleware.ActorFrom(c), id, present)
	if err != nil {
		httperr.FromError(c, err, "checkin_failed")
		return
	}

	httpresp.OK(c, ci)
}

// ======================================================
// SELF-SERVICE (TUTOR)
// ======================================================

// UpdateOwn lets a tutor edit the sheet of one of their pets.
func (h *PetHandler) UpdateOwn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch petdomain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	pet, err := h.ownPet.Execute(c.Request.Context(), middleware.ActorFrom(c), id, patch)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_pet")
		return
	}
	httpresp.OK(c, pet)
}

// ======================================================
// TRAINING LOG
// ======================================================

type TrainingRequest struct {
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	Progress int    `json:"progress"`
}

func (h *PetHandler) AddTraining(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	e, err := h.training.Execute(c.Request.Context(), petuc.AddTrainingInput{
		Actor:    middleware.ActorFrom(c),
		PetID:    id,
		Title:    req.Title,
		Notes:    req.Notes,
		Progress: req.Progress,
	})
	if err != nil {
		httperr.FromError(c, err, "training_failed")
		return
	}
	httpresp.Created(c, e)
}

func (h *PetHandler) Training(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.log.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.FromError(c, err, "training_failed")
		return
	}
	httpresp.List(c, entries)
}
