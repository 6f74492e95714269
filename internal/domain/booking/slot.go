package booking

import (
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

func AvailableSpots(slot *models.ServiceSlot) int {
	return slot.MaxCapacity - slot.BookedCount
}

func IsFullyBooked(slot *models.ServiceSlot) bool {
	return slot.BookedCount >= slot.MaxCapacity
}

// Bookable checks the slot-side preconditions for a new request.
func Bookable(slot *models.ServiceSlot) error {
	if !slot.IsAvailable {
		return errSlotUnavailable()
	}
	if IsFullyBooked(slot) {
		return errSlotFull()
	}
	return nil
}

// SlotStart resolves the slot's date and start time in loc.
func SlotStart(slot *models.ServiceSlot, loc *time.Location) (time.Time, error) {
	hm, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		slot.Date.Year(), slot.Date.Month(), slot.Date.Day(),
		hm.Hour(), hm.Minute(), 0, 0,
		loc,
	), nil
}
