package models

import (
	"time"

	"github.com/google/uuid"
)

type Invitation struct {
	Token      uuid.UUID `gorm:"type:uuid;primaryKey" json:"token"`
	BusinessID uint      `gorm:"uniqueIndex:idx_invitation_business_email;not null" json:"business_id"`
	Email      string    `gorm:"size:100;uniqueIndex:idx_invitation_business_email;not null" json:"email"`
	Role       string    `gorm:"size:20;not null" json:"role"`

	UsedAt   *time.Time `json:"used_at"`
	UsedByID *uint      `json:"used_by_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Invitation) IsUsed() bool {
	return i.UsedAt != nil
}
