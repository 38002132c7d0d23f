package visitor

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visitor) error
	GetByID(ctx context.Context, visitorID uint64) (*Visitor, error)
	List(ctx context.Context) ([]Visitor, error)

	CreateApproved(ctx context.Context, a *ApprovedVisitor) error
	ListApprovedByPUC(ctx context.Context, pucID uint64) ([]ApprovedVisitor, error)
	ListApproved(ctx context.Context) ([]ApprovedView, error)
	DeleteApprovedByUserID(ctx context.Context, userID uint64) (int64, error)
}
