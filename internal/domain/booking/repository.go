package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

type SlotFilter struct {
	BusinessID    uint
	From          time.Time
	To            time.Time
	ServiceID     *uint
	OnlyAvailable bool
}

// BookingFilter bounds are on the slot date, both inclusive.
type BookingFilter struct {
	BusinessID uint
	PetID      *uint
	TutorID    *uint
	Statuses   []string
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	// -------- Transaction --------
	// fn receives a repository bound to the transaction. Lock* methods
	// only hold their row lock when called on that repository.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Scope --------
	GetBusiness(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetPet(
		ctx context.Context,
		id uint,
	) (*models.Pet, error)

	GetTutor(
		ctx context.Context,
		id uint,
	) (*models.Tutor, error)

	PetHasTutor(
		ctx context.Context,
		petID uint,
		tutorID uint,
	) (bool, error)

	// -------- Slot --------
	ListServices(
		ctx context.Context,
	) ([]models.Service, error)

	GetSlot(
		ctx context.Context,
		id uint,
	) (*models.ServiceSlot, error)

	LockSlot(
		ctx context.Context,
		id uint,
	) (*models.ServiceSlot, error)

	SaveSlot(
		ctx context.Context,
		slot *models.ServiceSlot,
	) error

	ListSlots(
		ctx context.Context,
		f SlotFilter,
	) ([]models.ServiceSlot, error)

	// EnsureSlot inserts the slot unless one already holds its window.
	EnsureSlot(
		ctx context.Context,
		slot *models.ServiceSlot,
	) (bool, error)

	// -------- Booking --------
	HasActiveBooking(
		ctx context.Context,
		slotID uint,
		petID uint,
	) (bool, error)

	CreateBooking(
		ctx context.Context,
		b *models.ServiceBooking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.ServiceBooking, error)

	LockBooking(
		ctx context.Context,
		id uint,
	) (*models.ServiceBooking, error)

	SaveBooking(
		ctx context.Context,
		b *models.ServiceBooking,
	) error

	ListBookings(
		ctx context.Context,
		f BookingFilter,
	) ([]models.ServiceBooking, error)
}
