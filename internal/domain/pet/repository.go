package pet

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

type Filter struct {
	BusinessID uint
	// TutorID limits the list to pets linked to that tutor.
	TutorID *uint
}

type Repository interface {
	ListPets(ctx context.Context, f Filter) ([]models.Pet, error)
	GetPet(ctx context.Context, id uint) (*models.Pet, error)

	// ListCheckIns returns the check-in row of each pet that has one.
	ListCheckIns(ctx context.Context, petIDs []uint) (map[uint]models.CheckIn, error)
	// SaveCheckIn upserts by pet and reports whether the row is new.
	SaveCheckIn(ctx context.Context, ci *models.CheckIn) (created bool, err error)

	CreateWoof(ctx context.Context, w *models.Woof) error

	PetHasTutor(ctx context.Context, petID, tutorID uint) (bool, error)
	// SavePet writes the pet's own columns; tutor links are left as they are.
	SavePet(ctx context.Context, p *models.Pet) error

	GetTutor(ctx context.Context, id uint) (*models.Tutor, error)
	SaveTutor(ctx context.Context, t *models.Tutor) error

	CreateTrainingEntry(ctx context.Context, e *models.TrainingEntry) error
	// ListTrainingEntries returns at most limit entries, newest date first.
	ListTrainingEntries(ctx context.Context, petID uint, limit int) ([]models.TrainingEntry, error)
}
