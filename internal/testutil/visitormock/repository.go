package visitormock

import (
	"context"

	domain "themis-backend/internal/domain/visitor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, v *domain.Visitor) error
	GetByIDFn                func(ctx context.Context, visitorID uint64) (*domain.Visitor, error)
	ListFn                   func(ctx context.Context) ([]domain.Visitor, error)
	CreateApprovedFn         func(ctx context.Context, a *domain.ApprovedVisitor) error
	ListApprovedByPUCFn      func(ctx context.Context, pucID uint64) ([]domain.ApprovedVisitor, error)
	ListApprovedFn           func(ctx context.Context) ([]domain.ApprovedView, error)
	DeleteApprovedByUserIDFn func(ctx context.Context, userID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, v *domain.Visitor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, visitorID uint64) (*domain.Visitor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, visitorID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Visitor, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) CreateApproved(ctx context.Context, a *domain.ApprovedVisitor) error {
	if m.CreateApprovedFn != nil {
		return m.CreateApprovedFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListApprovedByPUC(ctx context.Context, pucID uint64) ([]domain.ApprovedVisitor, error) {
	if m.ListApprovedByPUCFn != nil {
		return m.ListApprovedByPUCFn(ctx, pucID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListApproved(ctx context.Context) ([]domain.ApprovedView, error) {
	if m.ListApprovedFn != nil {
		return m.ListApprovedFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) DeleteApprovedByUserID(ctx context.Context, userID uint64) (int64, error) {
	if m.DeleteApprovedByUserIDFn != nil {
		return m.DeleteApprovedByUserIDFn(ctx, userID)
	}
	return 0, nil
}
