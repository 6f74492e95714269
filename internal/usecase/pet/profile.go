package pet

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

func tutorOnly(a actor.Actor) (actor.Tutor, error) {
	t, ok := a.(actor.Tutor)
	if !ok {
		return actor.Tutor{}, httperr.Reject(httperr.CodeForbidden, "Only tutors can edit their own profile")
	}
	return t, nil
}

// ======================================================
// Pet sheet
// ======================================================

type UpdateOwnPet struct {
	repo  petdomain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOwnPet(repo petdomain.Repository, audit *audit.Dispatcher) *UpdateOwnPet {
	return &UpdateOwnPet{repo: repo, audit: audit}
}

// Execute lets a tutor edit the sheet of one of their pets. Tutor links are
// staff-only and never change here.
func (uc *UpdateOwnPet) Execute(
	ctx context.Context,
	a actor.Actor,
	petID uint,
	patch petdomain.Patch,
) (*models.Pet, error) {

	t, err := tutorOnly(a)
	if err != nil {
		return nil, err
	}

	pet, err := ownedPet(ctx, uc.repo, t, petID)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(pet); err != nil {
		return nil, err
	}
	if err := uc.repo.SavePet(ctx, pet); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: pet.BusinessID,
		UserID:     &t.UserID,
		Action:     "pet_updated",
		Entity:     "pet",
		EntityID:   &pet.ID,
		Metadata:   map[string]any{"actor": actor.Kind(a)},
	})

	return pet, nil
}

// ======================================================
// Tutor profile
// ======================================================

type UpdateTutorProfile struct {
	repo  petdomain.Repository
	audit *audit.Dispatcher
}

func NewUpdateTutorProfile(repo petdomain.Repository, audit *audit.Dispatcher) *UpdateTutorProfile {
	return &UpdateTutorProfile{repo: repo, audit: audit}
}

func (uc *UpdateTutorProfile) Execute(
	ctx context.Context,
	a actor.Actor,
	patch petdomain.TutorPatch,
) (*models.Tutor, error) {

	t, err := tutorOnly(a)
	if err != nil {
		return nil, err
	}

	tutor, err := uc.repo.GetTutor(ctx, t.TutorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Reject(httperr.CodeTutorNotFound, "Tutor not found")
	}
	if err != nil {
		return nil, err
	}
	if tutor.BusinessID != t.BusinessID {
		return nil, httperr.Reject(httperr.CodeTutorNotFound, "Tutor not found")
	}

	if err := patch.Apply(tutor); err != nil {
		return nil, err
	}
	if err := uc.repo.SaveTutor(ctx, tutor); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: tutor.BusinessID,
		UserID:     &t.UserID,
		Action:     "tutor_profile_updated",
		Entity:     "tutor",
		EntityID:   &tutor.ID,
	})

	return tutor, nil
}
