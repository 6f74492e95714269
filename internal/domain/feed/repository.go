package feed

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

// PetWoofFilter selects top-level pet posts of a business. A nil PetIDs
// means every pet.
type PetWoofFilter struct {
	BusinessID uint
	PetIDs     []uint
	PublicOnly bool
	Limit      int
}

type Repository interface {
	GetPet(
		ctx context.Context,
		id uint,
	) (*models.Pet, error)

	PetHasTutor(
		ctx context.Context,
		petID uint,
		tutorID uint,
	) (bool, error)

	ListTutorPetIDs(
		ctx context.Context,
		tutorID uint,
	) ([]uint, error)

	ListGlobalWoofs(
		ctx context.Context,
		businessID uint,
	) ([]models.GlobalWoof, error)

	ListPetWoofs(
		ctx context.Context,
		f PetWoofFilter,
	) ([]models.Woof, error)

	GetWoof(
		ctx context.Context,
		id uint,
	) (*models.Woof, error)

	// ListReplies returns replies oldest first.
	ListReplies(
		ctx context.Context,
		parentID uint,
	) ([]models.Woof, error)

	CreateWoof(
		ctx context.Context,
		w *models.Woof,
	) error

	CreateGlobalWoof(
		ctx context.Context,
		gw *models.GlobalWoof,
	) error
}
