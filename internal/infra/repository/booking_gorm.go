package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Scope
// --------------------------------------------------

func (r *BookingGormRepository) GetBusiness(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, wrap(err, "get business")
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetPet(
	ctx context.Context,
	id uint,
) (*models.Pet, error) {

	var pet models.Pet
	if err := r.db.WithContext(ctx).
		Preload("Tutors").
		First(&pet, id).Error; err != nil {
		return nil, wrap(err, "get pet")
	}
	return &pet, nil
}

func (r *BookingGormRepository) GetTutor(
	ctx context.Context,
	id uint,
) (*models.Tutor, error) {

	var tutor models.Tutor
	if err := r.db.WithContext(ctx).First(&tutor, id).Error; err != nil {
		return nil, wrap(err, "get tutor")
	}
	return &tutor, nil
}

func (r *BookingGormRepository) PetHasTutor(
	ctx context.Context,
	petID uint,
	tutorID uint,
) (bool, error) {
	return petHasTutor(r.db.WithContext(ctx), petID, tutorID)
}

func petHasTutor(db *gorm.DB, petID, tutorID uint) (bool, error) {
	var count int64
	if err := db.
		Table("pet_tutors").
		Where("pet_id = ? AND tutor_id = ?", petID, tutorID).
		Count(&count).Error; err != nil {
		return false, wrap(err, "pet tutor link")
	}
	return count > 0, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *BookingGormRepository) ListServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, wrap(err, "list services")
	}
	return services, nil
}

func (r *BookingGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.ServiceSlot, error) {

	var slot models.ServiceSlot
	if err := r.db.WithContext(ctx).
		Preload("Service").
		First(&slot, id).Error; err != nil {
		return nil, wrap(err, "get slot")
	}
	return &slot, nil
}

func (r *BookingGormRepository) LockSlot(
	ctx context.Context,
	id uint,
) (*models.ServiceSlot, error) {

	var slot models.ServiceSlot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, wrap(err, "lock slot")
	}
	return &slot, nil
}

func (r *BookingGormRepository) SaveSlot(
	ctx context.Context,
	slot *models.ServiceSlot,
) error {
	return wrap(
		r.db.WithContext(ctx).
			Model(slot).
			Select("booked_count", "is_available", "max_capacity", "updated_at").
			Updates(slot).Error,
		"save slot",
	)
}

func (r *BookingGormRepository) ListSlots(
	ctx context.Context,
	f domain.SlotFilter,
) ([]models.ServiceSlot, error) {

	q := r.db.WithContext(ctx).
		Preload("Service").
		Where("business_id = ? AND date >= ? AND date <= ?", f.BusinessID, f.From, f.To)

	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.OnlyAvailable {
		q = q.Where("is_available = ? AND booked_count < max_capacity", true)
	}

	var slots []models.ServiceSlot
	if err := q.
		Order("date ASC, start_time ASC, id ASC").
		Find(&slots).Error; err != nil {
		return nil, wrap(err, "list slots")
	}
	return slots, nil
}

func (r *BookingGormRepository) EnsureSlot(
	ctx context.Context,
	slot *models.ServiceSlot,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "business_id"},
				{Name: "service_id"},
				{Name: "date"},
				{Name: "start_time"},
			},
			DoNothing: true,
		}).
		Create(slot)
	if res.Error != nil {
		return false, wrap(res.Error, "ensure slot")
	}
	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) HasActiveBooking(
	ctx context.Context,
	slotID uint,
	petID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ServiceBooking{}).
		Where("slot_id = ? AND pet_id = ? AND status IN ?", slotID, petID, domain.ActiveStatuses()).
		Count(&count).Error; err != nil {
		return false, wrap(err, "active booking")
	}
	return count > 0, nil
}

// CreateBooking maps a hit on the active-booking index to the duplicate
// rejection, which covers two requests racing past HasActiveBooking.
func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.ServiceBooking,
) error {

	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
	if httperr.IsUniqueViolation(err, models.ActiveBookingIndex) {
		return domain.ErrDuplicate()
	}
	return wrap(err, "create booking")
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.ServiceBooking, error) {

	var b models.ServiceBooking
	if err := r.db.WithContext(ctx).
		Preload("Slot.Service").
		Preload("Pet").
		Preload("Tutor").
		First(&b, id).Error; err != nil {
		return nil, wrap(err, "get booking")
	}
	return &b, nil
}

func (r *BookingGormRepository) LockBooking(
	ctx context.Context,
	id uint,
) (*models.ServiceBooking, error) {

	var b models.ServiceBooking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error; err != nil {
		return nil, wrap(err, "lock booking")
	}
	return &b, nil
}

func (r *BookingGormRepository) SaveBooking(
	ctx context.Context,
	b *models.ServiceBooking,
) error {
	return wrap(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error,
		"save booking",
	)
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.BookingFilter,
) ([]models.ServiceBooking, error) {

	q := r.db.WithContext(ctx).
		Joins("JOIN service_slots ON service_slots.id = service_bookings.slot_id").
		Preload("Slot.Service").
		Preload("Pet").
		Preload("Tutor")

	if f.BusinessID != 0 {
		q = q.Where("service_bookings.business_id = ?", f.BusinessID)
	}
	if f.PetID != nil {
		q = q.Where("service_bookings.pet_id = ?", *f.PetID)
	}
	if f.TutorID != nil {
		q = q.Where("service_bookings.tutor_id = ?", *f.TutorID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("service_bookings.status IN ?", f.Statuses)
	}
	if f.From != nil {
		q = q.Where("service_slots.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("service_slots.date <= ?", *f.To)
	}

	var bookings []models.ServiceBooking
	if err := q.
		Order("service_slots.date ASC, service_slots.start_time ASC, service_bookings.id ASC").
		Find(&bookings).Error; err != nil {
		return nil, wrap(err, "list bookings")
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
