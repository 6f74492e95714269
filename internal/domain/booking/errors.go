package booking

import "github.com/BruksfildServices01/petcrm/internal/httperr"

func errSlotFull() error {
	return httperr.Reject(httperr.CodeSlotFull, "Slot is already fully booked")
}

func errSlotUnavailable() error {
	return httperr.Reject(httperr.CodeSlotUnavailable, "Slot is not available")
}

func ErrDuplicate() error {
	return httperr.Reject(httperr.CodeDuplicateBooking, "Pet already has a booking for this slot")
}

func ErrPetSlotBusiness() error {
	return httperr.Reject(httperr.CodeCrossBusiness, "Pet and slot must belong to the same business")
}

func ErrTutorPetBusiness() error {
	return httperr.Reject(httperr.CodeCrossBusiness, "Tutor and pet must belong to the same business")
}
