package mysql

import (
	"context"

	auditDomain "themis-backend/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, l *auditDomain.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]auditDomain.View, error) {
	q := r.db.WithContext(ctx).
		Table("auditlogs a").
		Select("a.audit_id, a.user_id, u.username, a.event_type, a.event_time, a.ip_address, a.notes").
		Joins("LEFT JOIN users u ON u.user_id = a.user_id").
		Order("a.event_time DESC, a.audit_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []auditDomain.View
	err := q.Scan(&out).Error
	return out, err
}
