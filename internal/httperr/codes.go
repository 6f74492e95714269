package httperr

const (
	CodeForbidden        = "forbidden"
	CodeInvalidState     = "invalid_state"
	CodeSlotFull         = "slot_full"
	CodeSlotUnavailable  = "slot_unavailable"
	CodeCrossBusiness    = "cross_business"
	CodeDuplicateBooking = "duplicate_booking"
	CodeBookingNotFound  = "booking_not_found"
	CodeSlotNotFound     = "slot_not_found"
	CodePetNotFound      = "pet_not_found"
	CodeTutorNotFound    = "tutor_not_found"
	CodeWoofNotFound     = "woof_not_found"
	CodeInvalidMessage   = "invalid_message"
	CodeInvalidParent    = "invalid_parent"
)

const (
	CodeTutorRequired    = "tutor_required"
	CodeTutorNotLinked   = "tutor_not_linked"
	CodeInvalidRange     = "invalid_range"
	CodeInvalidStatus    = "invalid_status"
	CodeBusinessNeeded   = "business_required"
	CodeBusinessNotFound = "business_not_found"
)

const (
	CodeInvalidTitle = "invalid_title"
	CodeInvalidPet   = "invalid_pet"
	CodeInvalidTutor = "invalid_tutor"
)
