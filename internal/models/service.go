package models

import "time"

// Service is reference data: one row per offering type.
type Service struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Type            string  `gorm:"size:20;uniqueIndex;not null" json:"type"`
	DurationMinutes int     `gorm:"default:60" json:"duration_minutes"`
	Price           float64 `json:"price"`
	Description     string  `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

type ServiceSlot struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	BusinessID uint     `gorm:"uniqueIndex:idx_service_slot_window,priority:1;not null" json:"business_id"`
	ServiceID  uint     `gorm:"uniqueIndex:idx_service_slot_window,priority:2;not null" json:"service_id"`
	Service    *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	Date      time.Time `gorm:"type:date;uniqueIndex:idx_service_slot_window,priority:3;not null" json:"date"`
	StartTime string    `gorm:"size:5;uniqueIndex:idx_service_slot_window,priority:4;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	MaxCapacity int  `gorm:"not null;default:1;check:chk_service_slots_max_capacity,max_capacity >= 1" json:"max_capacity"`
	BookedCount int  `gorm:"not null;default:0;check:chk_service_slots_booked_count,booked_count >= 0 AND booked_count <= max_capacity" json:"booked_count"`
	IsAvailable bool `gorm:"not null;default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceBooking struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	SlotID  uint         `gorm:"index;not null" json:"slot_id"`
	Slot    *ServiceSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slot,omitempty"`
	PetID   uint         `gorm:"index;not null" json:"pet_id"`
	Pet     *Pet         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet,omitempty"`
	TutorID uint         `gorm:"index;not null" json:"tutor_id"`
	Tutor   *Tutor       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tutor,omitempty"`

	Status       string `gorm:"size:20;not null;default:'pending'" json:"status"`
	Notes        string `gorm:"type:text" json:"notes"`
	CancelReason string `gorm:"size:255" json:"cancel_reason"`

	RequestedAt   time.Time  `json:"requested_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at"`
	ConfirmedByID *uint      `json:"confirmed_by_id"`
	CancelledAt   *time.Time `json:"cancelled_at"`

	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveBookingIndex allows one pending or confirmed booking per pet and slot.
const ActiveBookingIndex = "idx_service_bookings_active_slot_pet"
