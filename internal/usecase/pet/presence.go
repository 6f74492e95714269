package pet

import (
	"context"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type Clock func() time.Time

type UpdatePresence struct {
	repo  petdomain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewUpdatePresence(
	repo petdomain.Repository,
	audit *audit.Dispatcher,
	now Clock,
) *UpdatePresence {
	if now == nil {
		now = time.Now
	}
	return &UpdatePresence{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute checks a pet in (present) or out. The first check-in of a pet
// also posts an arrival message to its feed.
func (uc *UpdatePresence) Execute(
	ctx context.Context,
	a actor.Actor,
	petID uint,
	present bool,
) (*models.CheckIn, error) {

	pet, err := managedPet(ctx, uc.repo, a, petID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListCheckIns(ctx, []uint{pet.ID})
	if err != nil {
		return nil, err
	}

	ci := rows[pet.ID]
	ci.PetID = pet.ID

	now := uc.now()
	action := "pet_checked_out"
	if present {
		petdomain.CheckIn(&ci, now)
		action = "pet_checked_in"
	} else {
		petdomain.CheckOut(&ci, now)
	}

	created, err := uc.repo.SaveCheckIn(ctx, &ci)
	if err != nil {
		return nil, err
	}

	if created && present {
		uc.postArrival(ctx, a, pet, now)
	}

	uid := actor.UserIDOf(a)
	uc.audit.Dispatch(audit.Event{
		BusinessID: pet.BusinessID,
		UserID:     &uid,
		Action:     action,
		Entity:     "pet",
		EntityID:   &pet.ID,
	})

	return &ci, nil
}

func (uc *UpdatePresence) postArrival(ctx context.Context, a actor.Actor, pet *models.Pet, at time.Time) {
	staffID := actor.UserIDOf(a)

	w := models.Woof{
		BusinessID: pet.BusinessID,
		PetID:      pet.ID,
		StaffID:    &staffID,
		Message:    petdomain.ArrivalMessage(pet.Name, at),
		Visibility: models.VisibilityPublic,
		CreatedAt:  at,
	}
	if err := uc.repo.CreateWoof(ctx, &w); err != nil {
		logger.ErrorLogger.WithError(err).
			WithField("pet_id", pet.ID).
			Warn("arrival post failed")
	}
}
