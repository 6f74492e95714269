package feed

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	feeddomain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func errPetNotFound() error {
	return httperr.Reject(httperr.CodePetNotFound, "Pet not found")
}

func errWoofNotFound() error {
	return httperr.Reject(httperr.CodeWoofNotFound, "Post not found")
}

func lookup(err error, notFound func() error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound()
	}
	return err
}

// canSeePet is true for staff of the pet's business, admins, and the pet's
// tutors.
func canSeePet(ctx context.Context, repo feeddomain.Repository, a actor.Actor, pet *models.Pet) (bool, error) {
	if actor.CanManageBusiness(a, pet.BusinessID) {
		return true, nil
	}
	t, ok := a.(actor.Tutor)
	if !ok || t.BusinessID != pet.BusinessID {
		return false, nil
	}
	return repo.PetHasTutor(ctx, pet.ID, t.TutorID)
}

func author(a actor.Actor, w *models.Woof) {
	switch v := a.(type) {
	case actor.Staff:
		id := v.UserID
		w.StaffID = &id
	case actor.Admin:
		id := v.UserID
		w.StaffID = &id
	case actor.Tutor:
		id := v.TutorID
		w.TutorID = &id
	}
}
