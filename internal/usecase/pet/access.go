package pet

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/petcrm/internal/domain"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

func errPetNotFound() error {
	return httperr.Reject(httperr.CodePetNotFound, "Pet not found")
}

func getPet(ctx context.Context, repo petdomain.Repository, id uint) (*models.Pet, error) {
	pet, err := repo.GetPet(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errPetNotFound()
	}
	return pet, err
}

// managedPet loads a pet of a business the actor manages. Pets of other
// businesses read as missing.
func managedPet(ctx context.Context, repo petdomain.Repository, a actor.Actor, id uint) (*models.Pet, error) {
	pet, err := getPet(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageBusiness(a, pet.BusinessID) {
		return nil, errPetNotFound()
	}
	return pet, nil
}

// readablePet also lets the pet's own tutors through.
func readablePet(ctx context.Context, repo petdomain.Repository, a actor.Actor, id uint) (*models.Pet, error) {
	t, isTutor := a.(actor.Tutor)
	if !isTutor {
		return managedPet(ctx, repo, a, id)
	}
	return ownedPet(ctx, repo, t, id)
}

func ownedPet(ctx context.Context, repo petdomain.Repository, t actor.Tutor, id uint) (*models.Pet, error) {
	pet, err := getPet(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if pet.BusinessID != t.BusinessID {
		return nil, errPetNotFound()
	}
	ok, err := repo.PetHasTutor(ctx, pet.ID, t.TutorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errPetNotFound()
	}
	return pet, nil
}
