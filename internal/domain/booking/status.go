package booking

import "github.com/BruksfildServices01/petcrm/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active bookings hold a place on their slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.Reject(
			httperr.CodeInvalidState,
			"Only pending bookings can be confirmed. Current status: %s", current,
		)
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.Active() {
		return httperr.Reject(
			httperr.CodeInvalidState,
			"Only pending or confirmed bookings can be cancelled. Current status: %s", current,
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
