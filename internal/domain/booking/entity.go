package booking

import (
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

// ===============================
// Domain Actions
// ===============================
// Both actions expect booking and slot to be locked by the caller's
// transaction; they only mutate the structs.

func Confirm(b *models.ServiceBooking, slot *models.ServiceSlot, confirmedBy *uint, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}
	if IsFullyBooked(slot) {
		return errSlotFull()
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	b.ConfirmedByID = confirmedBy
	slot.BookedCount++
	return nil
}

// Cancel reports whether the slot counter changed.
func Cancel(b *models.ServiceBooking, slot *models.ServiceSlot, reason string, now time.Time) (bool, error) {
	prev := Status(b.Status)
	if err := CanCancel(prev); err != nil {
		return false, err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancelReason = reason

	if prev != StatusConfirmed {
		return false, nil
	}
	if slot.BookedCount > 0 {
		slot.BookedCount--
	}
	return true, nil
}

func NewPending(slot *models.ServiceSlot, pet *models.Pet, tutor *models.Tutor, notes string, now time.Time) *models.ServiceBooking {
	return &models.ServiceBooking{
		BusinessID:  pet.BusinessID,
		SlotID:      slot.ID,
		PetID:       pet.ID,
		TutorID:     tutor.ID,
		Status:      string(InitialStatus()),
		Notes:       notes,
		RequestedAt: now,
	}
}

// CheckScope enforces that slot, pet and tutor live in one business.
func CheckScope(slot *models.ServiceSlot, pet *models.Pet, tutor *models.Tutor) error {
	if pet.BusinessID != slot.BusinessID {
		return ErrPetSlotBusiness()
	}
	if tutor.BusinessID != pet.BusinessID {
		return ErrTutorPetBusiness()
	}
	return nil
}
