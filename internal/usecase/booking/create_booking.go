package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor  actor.Actor
	SlotID uint
	PetID  uint

	// TutorID is required for staff and admins. Tutors always book as
	// themselves.
	TutorID uint
	Notes   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now Clock,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   orNow(now),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute records a pending request. The slot counter is untouched; only
// confirmation takes a spot.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.ServiceBooking, error) {

	var created *models.ServiceBooking

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Pet, as seen by the actor
		// --------------------------------------------------
		pet, err := tx.GetPet(ctx, in.PetID)
		if err != nil {
			return notFound(err, httperr.CodePetNotFound, "Pet not found")
		}
		if !actor.CanSeeBusiness(in.Actor, pet.BusinessID) {
			return httperr.Reject(httperr.CodePetNotFound, "Pet not found")
		}

		// --------------------------------------------------
		// Tutor
		// --------------------------------------------------
		tutorID := in.TutorID
		switch a := in.Actor.(type) {
		case actor.Tutor:
			tutorID = a.TutorID
		case actor.Staff, actor.Admin:
			if tutorID == 0 {
				return httperr.Reject(httperr.CodeTutorRequired, "A tutor is required to book on behalf of a pet")
			}
		default:
			return errForbidden("Not allowed to request bookings")
		}

		tutor, err := tx.GetTutor(ctx, tutorID)
		if err != nil {
			return notFound(err, httperr.CodeTutorNotFound, "Tutor not found")
		}

		// --------------------------------------------------
		// Slot, locked until commit
		// --------------------------------------------------
		slot, err := tx.LockSlot(ctx, in.SlotID)
		if err != nil {
			return notFound(err, httperr.CodeSlotNotFound, "Slot not found")
		}

		if err := domain.CheckScope(slot, pet, tutor); err != nil {
			return err
		}

		linked, err := tx.PetHasTutor(ctx, pet.ID, tutor.ID)
		if err != nil {
			return err
		}
		if !linked {
			return httperr.Reject(httperr.CodeTutorNotLinked, "Tutor is not responsible for this pet")
		}

		if err := domain.Bookable(slot); err != nil {
			return err
		}

		dup, err := tx.HasActiveBooking(ctx, slot.ID, pet.ID)
		if err != nil {
			return err
		}
		if dup {
			return domain.ErrDuplicate()
		}

		b := domain.NewPending(slot, pet, tutor, strings.TrimSpace(in.Notes), uc.now())
		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		b.Slot, b.Pet, b.Tutor = slot, pet, tutor
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatch(uc.audit, audit.Event{
		BusinessID: created.BusinessID,
		UserID:     userRef(in.Actor),
		Action:     "booking_created",
		Entity:     "service_booking",
		EntityID:   &created.ID,
		Metadata: map[string]any{
			"slot_id":  created.SlotID,
			"pet_id":   created.PetID,
			"tutor_id": created.TutorID,
		},
	})

	return created, nil
}
