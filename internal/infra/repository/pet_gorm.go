package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/petcrm/internal/domain/pet"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type PetGormRepository struct {
	db *gorm.DB
}

func NewPetGormRepository(db *gorm.DB) *PetGormRepository {
	return &PetGormRepository{db: db}
}

func (r *PetGormRepository) ListPets(
	ctx context.Context,
	f domain.Filter,
) ([]models.Pet, error) {

	q := r.db.WithContext(ctx).
		Preload("Tutors").
		Where("pets.business_id = ?", f.BusinessID)

	if f.TutorID != nil {
		q = q.Joins("JOIN pet_tutors ON pet_tutors.pet_id = pets.id").
			Where("pet_tutors.tutor_id = ?", *f.TutorID)
	}

	pets := []models.Pet{}
	if err := q.Order("pets.name ASC").Find(&pets).Error; err != nil {
		return nil, wrap(err, "list pets")
	}
	return pets, nil
}

func (r *PetGormRepository) GetPet(
	ctx context.Context,
	id uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		return nil, wrap(err, "get pet")
	}
	return &pet, nil
}

// --------------------------------------------------
// Check-in
// --------------------------------------------------

func (r *PetGormRepository) ListCheckIns(
	ctx context.Context,
	petIDs []uint,
) (map[uint]models.CheckIn, error) {

	out := map[uint]models.CheckIn{}
	if len(petIDs) == 0 {
		return out, nil
	}

	var rows []models.CheckIn
	if err := r.db.WithContext(ctx).
		Where("pet_id IN ?", petIDs).
		Find(&rows).Error; err != nil {
		return nil, wrap(err, "list check-ins")
	}
	for _, ci := range rows {
		out[ci.PetID] = ci
	}
	return out, nil
}

func (r *PetGormRepository) SaveCheckIn(
	ctx context.Context,
	ci *models.CheckIn,
) (bool, error) {

	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev models.CheckIn
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pet_id = ?", ci.PetID).
			First(&prev).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
			return tx.Create(ci).Error
		case err != nil:
			return err
		}

		ci.ID = prev.ID
		return tx.Save(ci).Error
	})
	if err != nil {
		return false, wrap(err, "save check-in")
	}
	return created, nil
}

func (r *PetGormRepository) CreateWoof(
	ctx context.Context,
	w *models.Woof,
) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Create(w).Error, "create woof")
}

func (r *PetGormRepository) PetHasTutor(
	ctx context.Context,
	petID uint,
	tutorID uint,
) (bool, error) {

	var n int64
	if err := r.db.WithContext(ctx).
		Table("pet_tutors").
		Where("pet_id = ? AND tutor_id = ?", petID, tutorID).
		Count(&n).Error; err != nil {
		return false, wrap(err, "check pet tutor")
	}
	return n > 0, nil
}

func (r *PetGormRepository) SavePet(
	ctx context.Context,
	p *models.Pet,
) error {
	return wrap(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error, "save pet")
}

// --------------------------------------------------
// Tutor profile
// --------------------------------------------------

func (r *PetGormRepository) GetTutor(
	ctx context.Context,
	id uint,
) (*models.Tutor, error) {

	var t models.Tutor
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, wrap(err, "get tutor")
	}
	return &t, nil
}

func (r *PetGormRepository) SaveTutor(
	ctx context.Context,
	t *models.Tutor,
) error {
	return wrap(r.db.WithContext(ctx).Save(t).Error, "save tutor")
}

// --------------------------------------------------
// Training log
// --------------------------------------------------

func (r *PetGormRepository) CreateTrainingEntry(
	ctx context.Context,
	e *models.TrainingEntry,
) error {
	return wrap(r.db.WithContext(ctx).Create(e).Error, "create training entry")
}

func (r *PetGormRepository) ListTrainingEntries(
	ctx context.Context,
	petID uint,
	limit int,
) ([]models.TrainingEntry, error) {

	q := r.db.WithContext(ctx).
		Where("pet_id = ?", petID).
		Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	entries := []models.TrainingEntry{}
	if err := q.Find(&entries).Error; err != nil {
		return nil, wrap(err, "list training entries")
	}
	return entries, nil
}

var _ domain.Repository = (*PetGormRepository)(nil)
