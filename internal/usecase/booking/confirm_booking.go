package booking

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type ConfirmBooking struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
	now   Clock
}

func NewConfirmBooking(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
	now Clock,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:  repo,
		cache: cache,
		audit: audit,
		now:   orNow(now),
	}
}

// Execute confirms a pending booking and takes one spot on its slot. The
// booking row is locked before the slot row.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	a actor.Actor,
	bookingID uint,
) (*models.ServiceBooking, error) {

	if !isStaffOrAdmin(a) {
		return nil, errForbidden("Only staff can confirm bookings")
	}

	var businessID uint

	var saved *models.ServiceBooking

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		b, err := tx.LockBooking(ctx, bookingID)
		if err != nil {
			return notFound(err, httperr.CodeBookingNotFound, "Booking not found")
		}
		if !actor.CanManageBusiness(a, b.BusinessID) {
			return errBookingNotFound()
		}

		slot, err := tx.LockSlot(ctx, b.SlotID)
		if err != nil {
			return notFound(err, httperr.CodeSlotNotFound, "Slot not found")
		}

		if err := domain.Confirm(b, slot, userRef(a), uc.now()); err != nil {
			return err
		}

		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}
		if err := tx.SaveSlot(ctx, slot); err != nil {
			return err
		}

		b.Slot = slot
		businessID, saved = b.BusinessID, b
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, businessID)

	dispatch(uc.audit, audit.Event{
		BusinessID: businessID,
		UserID:     userRef(a),
		Action:     "booking_confirmed",
		Entity:     "service_booking",
		EntityID:   &bookingID,
	})

	return reload(ctx, uc.repo, saved), nil
}
