package models

import "time"

// AuditLog is one persisted audit event. Listing is always per business,
// newest first.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint   `gorm:"index:idx_audit_business_created,priority:1" json:"business_id"`
	UserID     *uint  `json:"user_id,omitempty"`
	Action     string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_business_created,priority:2" json:"created_at"`
}
