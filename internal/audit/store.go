package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/models"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Query selects one page of a business's audit trail. From and To are
// inclusive calendar days.
type Query struct {
	BusinessID uint
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

// Normalize applies the default page and limit.
func (q *Query) Normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxLimit {
		q.Limit = DefaultLimit
	}
}

// Store keeps events in the audit_logs table.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ Sink = (*Store)(nil)

func (s *Store) Log(ev Event) error {
	row := models.AuditLog{
		BusinessID: ev.BusinessID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
	}
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			row.Metadata = string(b)
		}
	}

	return s.db.Create(&row).Error
}

// List returns the requested page, newest first, plus the number of rows
// matching the filters.
func (s *Store) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q.Normalize()

	tx := s.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", q.BusinessID)

	if q.Action != "" {
		tx = tx.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at < ?", q.To.AddDate(0, 0, 1))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := tx.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error

	return logs, total, err
}
