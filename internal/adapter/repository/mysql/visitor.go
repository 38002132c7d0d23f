package mysql

import (
	"context"

	visitorDomain "themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

type VisitorRepository struct{ db *gorm.DB }

func NewVisitorRepository(db *gorm.DB) *VisitorRepository { return &VisitorRepository{db: db} }

func (r *VisitorRepository) Create(ctx context.Context, v *visitorDomain.Visitor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VisitorRepository) GetByID(ctx context.Context, visitorID uint64) (*visitorDomain.Visitor, error) {
	var out visitorDomain.Visitor
	res := r.db.WithContext(ctx).Where("visitor_id = ?", visitorID).First(&out)
	return &out, res.Error
}

func (r *VisitorRepository) List(ctx context.Context) ([]visitorDomain.Visitor, error) {
	var out []visitorDomain.Visitor
	err := r.db.WithContext(ctx).Order("registered_at DESC, visitor_id DESC").Find(&out).Error
	return out, err
}

func (r *VisitorRepository) CreateApproved(ctx context.Context, a *visitorDomain.ApprovedVisitor) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *VisitorRepository) ListApprovedByPUC(ctx context.Context, pucID uint64) ([]visitorDomain.ApprovedVisitor, error) {
	var out []visitorDomain.ApprovedVisitor
	err := r.db.WithContext(ctx).
		Where("pupc_id = ?", pucID).
		Order("last_name, first_name").
		Find(&out).Error
	return out, err
}

func (r *VisitorRepository) ListApproved(ctx context.Context) ([]visitorDomain.ApprovedView, error) {
	var out []visitorDomain.ApprovedView
	err := r.db.WithContext(ctx).
		Table("approvedvisitors av").
		Select("av.*, p.first_name AS puc_first_name, p.last_name AS puc_last_name").
		Joins("LEFT JOIN pupcs p ON p.pupc_id = av.pupc_id").
		Order("av.created_at DESC, av.approval_id DESC").
		Scan(&out).Error
	return out, err
}

func (r *VisitorRepository) DeleteApprovedByUserID(ctx context.Context, userID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&visitorDomain.ApprovedVisitor{})
	return res.RowsAffected, res.Error
}
