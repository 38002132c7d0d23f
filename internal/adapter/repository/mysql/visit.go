package mysql

import (
	"context"

	visitDomain "themis-backend/internal/domain/visit"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const visitViewColumns = "vl.visitor_log_id, vl.pupc_id, vl.visitor_id, vl.visit_date, vl.visit_time, vl.purpose, " +
	"vl.approval_status, vl.approved_by, vl.approval_date, vl.created_at, " +
	"v.first_name AS visitor_first_name, v.last_name AS visitor_last_name, v.relationship_to_puc AS relationship, " +
	"p.first_name AS puc_first_name, p.last_name AS puc_last_name, u.username AS approver_username"

type VisitRepository struct{ db *gorm.DB }

func NewVisitRepository(db *gorm.DB) *VisitRepository { return &VisitRepository{db: db} }

func (r *VisitRepository) Create(ctx context.Context, l *visitDomain.Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *VisitRepository) Save(ctx context.Context, l *visitDomain.Log) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *VisitRepository) GetByID(ctx context.Context, logID uint64) (*visitDomain.Log, error) {
	var out visitDomain.Log
	res := r.db.WithContext(ctx).Where("visitor_log_id = ?", logID).First(&out)
	return &out, res.Error
}

func (r *VisitRepository) GetByIDForUpdate(ctx context.Context, logID uint64) (*visitDomain.Log, error) {
	var out visitDomain.Log
	q := r.db.WithContext(ctx)
	// sqlite has no row locks; its single writer serializes the tx instead
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	res := q.Where("visitor_log_id = ?", logID).First(&out)
	return &out, res.Error
}

func (r *VisitRepository) List(ctx context.Context, f visitDomain.Filter) ([]visitDomain.View, error) {
	q := r.db.WithContext(ctx).
		Table("visitorlogs vl").
		Select(visitViewColumns).
		Joins("LEFT JOIN visitors v ON v.visitor_id = vl.visitor_id").
		Joins("LEFT JOIN pupcs p ON p.pupc_id = vl.pupc_id").
		Joins("LEFT JOIN users u ON u.user_id = vl.approved_by")
	if f.VisitorID != nil {
		q = q.Where("vl.visitor_id = ?", *f.VisitorID)
	}
	if f.Status != "" {
		q = q.Where("vl.approval_status = ?", f.Status)
	}
	var out []visitDomain.View
	err := q.Order("vl.created_at DESC, vl.visitor_log_id DESC").Scan(&out).Error
	return out, err
}
