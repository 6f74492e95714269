package dto

import (
	"time"

	"github.com/BruksfildServices01/petcrm/internal/models"
	"github.com/BruksfildServices01/petcrm/internal/timezone"
)

type BookingListDTO struct {
	ID           uint       `json:"id"`
	Status       string     `json:"status"`
	SlotID       uint       `json:"slot_id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Service      string     `json:"service"`
	PetID        uint       `json:"pet_id"`
	PetName      string     `json:"pet_name"`
	TutorID      uint       `json:"tutor_id"`
	TutorName    string     `json:"tutor_name"`
	Notes        string     `json:"notes"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	RequestedAt  time.Time  `json:"requested_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

func NewBookingListDTO(b models.ServiceBooking) BookingListDTO {
	out := BookingListDTO{
		ID:           b.ID,
		Status:       b.Status,
		SlotID:       b.SlotID,
		PetID:        b.PetID,
		TutorID:      b.TutorID,
		Notes:        b.Notes,
		CancelReason: b.CancelReason,
		RequestedAt:  b.RequestedAt,
		ConfirmedAt:  b.ConfirmedAt,
		CancelledAt:  b.CancelledAt,
	}
	if b.Slot != nil {
		out.Date = b.Slot.Date.Format(timezone.DateLayout)
		out.StartTime = b.Slot.StartTime
		out.EndTime = b.Slot.EndTime
		if b.Slot.Service != nil {
			out.Service = b.Slot.Service.Type
		}
	}
	if b.Pet != nil {
		out.PetName = b.Pet.Name
	}
	if b.Tutor != nil {
		out.TutorName = b.Tutor.Name
	}
	return out
}

func NewBookingList(bookings []models.ServiceBooking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingListDTO(b))
	}
	return out
}
