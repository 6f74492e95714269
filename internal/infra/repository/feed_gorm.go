package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petcrm/internal/domain/feed"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type FeedGormRepository struct {
	db *gorm.DB
}

func NewFeedGormRepository(db *gorm.DB) *FeedGormRepository {
	return &FeedGormRepository{db: db}
}

// --------------------------------------------------
// Pets
// --------------------------------------------------

func (r *FeedGormRepository) GetPet(
	ctx context.Context,
	id uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, id).Error; err != nil {
		return nil, wrap(err, "get pet")
	}
	return &pet, nil
}

func (r *FeedGormRepository) PetHasTutor(
	ctx context.Context,
	petID uint,
	tutorID uint,
) (bool, error) {
	return petHasTutor(r.db.WithContext(ctx), petID, tutorID)
}

func (r *FeedGormRepository) ListTutorPetIDs(
	ctx context.Context,
	tutorID uint,
) ([]uint, error) {

	ids := []uint{}
	if err := r.db.WithContext(ctx).
		Table("pet_tutors").
		Where("tutor_id = ?", tutorID).
		Order("pet_id ASC").
		Pluck("pet_id", &ids).Error; err != nil {
		return nil, wrap(err, "tutor pets")
	}
	return ids, nil
}

// --------------------------------------------------
// Posts
// --------------------------------------------------

func (r *FeedGormRepository) ListGlobalWoofs(
	ctx context.Context,
	businessID uint,
) ([]models.GlobalWoof, error) {

	var out []models.GlobalWoof
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("business_id = ?", businessID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list global woofs")
	}
	return out, nil
}

func (r *FeedGormRepository) ListPetWoofs(
	ctx context.Context,
	f domain.PetWoofFilter,
) ([]models.Woof, error) {

	if f.PetIDs != nil && len(f.PetIDs) == 0 {
		return []models.Woof{}, nil
	}

	q := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Staff").
		Preload("Tutor").
		Where("business_id = ? AND parent_id IS NULL", f.BusinessID)

	if f.PetIDs != nil {
		q = q.Where("pet_id IN ?", f.PetIDs)
	}
	if f.PublicOnly {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []models.Woof
	if err := q.
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list pet woofs")
	}
	return out, nil
}

func (r *FeedGormRepository) GetWoof(
	ctx context.Context,
	id uint,
) (*models.Woof, error) {

	var w models.Woof
	if err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Staff").
		Preload("Tutor").
		First(&w, id).Error; err != nil {
		return nil, wrap(err, "get woof")
	}
	return &w, nil
}

func (r *FeedGormRepository) ListReplies(
	ctx context.Context,
	parentID uint,
) ([]models.Woof, error) {

	var out []models.Woof
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Tutor").
		Where("parent_id = ?", parentID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, wrap(err, "list replies")
	}
	return out, nil
}

func (r *FeedGormRepository) CreateWoof(
	ctx context.Context,
	w *models.Woof,
) error {
	return wrap(r.db.WithContext(ctx).Omit("Pet", "Parent", "Staff", "Tutor").Create(w).Error, "create woof")
}

func (r *FeedGormRepository) CreateGlobalWoof(
	ctx context.Context,
	gw *models.GlobalWoof,
) error {
	return wrap(r.db.WithContext(ctx).Omit("Staff").Create(gw).Error, "create global woof")
}

// Compile-time check
var _ domain.Repository = (*FeedGormRepository)(nil)
