package pet

import (
	"context"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	petdomain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

// ======================================================
// Add entry
// ======================================================

type AddTrainingInput struct {
	Actor    actor.Actor
	PetID    uint
	Title    string
	Notes    string
	Progress int
}

type AddTrainingEntry struct {
	repo  petdomain.Repository
	audit *audit.Dispatcher
	now   Clock
}

func NewAddTrainingEntry(
	repo petdomain.Repository,
	audit *audit.Dispatcher,
	now Clock,
) *AddTrainingEntry {
	if now == nil {
		now = time.Now
	}
	return &AddTrainingEntry{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute logs a training session for a pet. Progress is clamped to 0..100.
func (uc *AddTrainingEntry) Execute(
	ctx context.Context,
	in AddTrainingInput,
) (*models.TrainingEntry, error) {

	title, err := petdomain.ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	pet, err := managedPet(ctx, uc.repo, in.Actor, in.PetID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	uid := actor.UserIDOf(in.Actor)

	e := &models.TrainingEntry{
		BusinessID: pet.BusinessID,
		PetID:      pet.ID,
		Date:       timezone.DateOf(now, timezone.Default()),
		Title:      title,
		Notes:      in.Notes,
		Progress:   petdomain.ClampProgress(in.Progress),
		StaffID:    &uid,
		CreatedAt:  now,
	}
	if err := uc.repo.CreateTrainingEntry(ctx, e); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: pet.BusinessID,
		UserID:     &uid,
		Action:     "training_entry_added",
		Entity:     "pet",
		EntityID:   &pet.ID,
		Metadata:   map[string]any{"title": title, "progress": e.Progress},
	})

	return e, nil
}

// ======================================================
// List entries
// ======================================================

type ListTrainingEntries struct {
	repo petdomain.Repository
}

func NewListTrainingEntries(repo petdomain.Repository) *ListTrainingEntries {
	return &ListTrainingEntries{repo: repo}
}

// Execute returns the latest entries of a pet for its business's staff or
// its own tutors.
func (uc *ListTrainingEntries) Execute(
	ctx context.Context,
	a actor.Actor,
	petID uint,
) ([]models.TrainingEntry, error) {

	pet, err := readablePet(ctx, uc.repo, a, petID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListTrainingEntries(ctx, pet.ID, petdomain.TrainingPageSize)
}
