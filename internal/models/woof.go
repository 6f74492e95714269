package models

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Woof is a post about one pet. Replies point at a top-level woof through ParentID.
type Woof struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`
	PetID      uint `gorm:"index;not null" json:"pet_id"`
	Pet        *Pet `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"pet,omitempty"`

	ParentID *uint `gorm:"index" json:"parent_id"`
	Parent   *Woof `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StaffID *uint  `json:"staff_id"`
	Staff   *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff,omitempty"`
	TutorID *uint  `json:"tutor_id"`
	Tutor   *Tutor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tutor,omitempty"`

	Message    string `gorm:"size:280;not null" json:"message"`
	Visibility string `gorm:"size:10;default:'public'" json:"visibility"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

type GlobalWoof struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	BusinessID uint  `gorm:"index;not null" json:"business_id"`
	StaffID    uint  `json:"staff_id"`
	Staff      *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff,omitempty"`

	Message string `gorm:"size:280;not null" json:"message"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
