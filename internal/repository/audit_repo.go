package repository

import (
	"context"

	"github.com/prathibhasolutions/prathibha-tech/internal/model"

	"gorm.io/gorm"
)

type AuditListFilter struct {
	Action string
	UserID string
	Page   int
	Limit  int
}

// AuditRepository is deliberately append-only: there is no update method,
// and the model's lifecycle hooks reject storage-level mutation attempts.
type AuditRepository interface {
	Record(ctx context.Context, event *model.AuditEvent) error
	List(ctx context.Context, filter AuditListFilter) ([]model.AuditEvent, int64, error)
	Count(ctx context.Context) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, event *model.AuditEvent) error {
	return GetDB(ctx, r.db).Create(event).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditListFilter) ([]model.AuditEvent, int64, error) {
	var events []model.AuditEvent
	var total int64

	apply := func(q *gorm.DB) *gorm.DB {
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
		return q
	}

	db := GetDB(ctx, r.db)
	if err := apply(db.Model(&model.AuditEvent{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := apply(db.Model(&model.AuditEvent{})).
		Order("created_at desc").Offset(offset).Limit(filter.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *auditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.AuditEvent{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
