package models

import "time"

type Pet struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	Name       string     `gorm:"size:100;not null" json:"name"`
	Species    string     `gorm:"size:50" json:"species"`
	Breed      string     `gorm:"size:100" json:"breed"`
	Sex        string     `gorm:"size:10;default:'unknown'" json:"sex"`
	Neutered   bool       `json:"neutered"`
	Birthday   *time.Time `gorm:"type:date" json:"birthday"`
	Allergies  string     `gorm:"type:text" json:"allergies"`
	ChipNumber string     `gorm:"size:64" json:"chip_number"`
	Notes      string     `gorm:"type:text" json:"notes"`

	Tutors []Tutor `gorm:"many2many:pet_tutors;" json:"tutors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CheckIn struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	PetID uint `gorm:"uniqueIndex;not null" json:"pet_id"`

	IsPresent    bool       `json:"is_present"`
	CheckinTime  *time.Time `json:"checkin_time"`
	CheckoutTime *time.Time `json:"checkout_time"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TrainingEntry is one line of a pet's training log, written by staff.
type TrainingEntry struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`
	PetID      uint `gorm:"index:idx_training_pet_date,priority:1;not null" json:"pet_id"`

	Date     time.Time `gorm:"type:date;index:idx_training_pet_date,priority:2;not null" json:"date"`
	Title    string    `gorm:"size:100;not null" json:"title"`
	Notes    string    `gorm:"type:text" json:"notes"`
	Progress int       `gorm:"not null;default:0;check:chk_training_progress,progress BETWEEN 0 AND 100" json:"progress"`

	StaffID *uint `json:"staff_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
