package booking

import (
	"context"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/domain/actor"
	domain "github.com/BruksfildServices01/petcrm/internal/domain/booking"
	"github.com/BruksfildServices01/petcrm/internal/httperr"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

type SetSlotAvailability struct {
	repo  domain.Repository
	cache SlotCache
	audit *audit.Dispatcher
}

func NewSetSlotAvailability(
	repo domain.Repository,
	cache SlotCache,
	audit *audit.Dispatcher,
) *SetSlotAvailability {
	return &SetSlotAvailability{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute opens or closes a slot for new requests. Existing bookings keep
// their place either way.
func (uc *SetSlotAvailability) Execute(
	ctx context.Context,
	a actor.Actor,
	slotID uint,
	available bool,
) (*models.ServiceSlot, error) {

	if !isStaffOrAdmin(a) {
		return nil, errForbidden("Only staff can change slot availability")
	}

	var slot *models.ServiceSlot

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := tx.LockSlot(ctx, slotID)
		if err != nil {
			return notFound(err, httperr.CodeSlotNotFound, "Slot not found")
		}
		if !actor.CanManageBusiness(a, s.BusinessID) {
			return errSlotNotFound()
		}

		s.IsAvailable = available
		if err := tx.SaveSlot(ctx, s); err != nil {
			return err
		}

		slot = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.cache, slot.BusinessID)

	dispatch(uc.audit, audit.Event{
		BusinessID: slot.BusinessID,
		UserID:     userRef(a),
		Action:     "slot_availability_changed",
		Entity:     "service_slot",
		EntityID:   &slot.ID,
		Metadata:   map[string]any{"is_available": available},
	})

	return slot, nil
}
