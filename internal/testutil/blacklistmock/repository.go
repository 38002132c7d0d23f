package blacklistmock

import (
	"context"

	domain "themis-backend/internal/domain/blacklist"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, e *domain.Entry) error
	GetByIDFn        func(ctx context.Context, blackID uint64) (*domain.Entry, error)
	GetByVisitorIDFn func(ctx context.Context, visitorID uint64) (*domain.Entry, error)
	ListFn           func(ctx context.Context) ([]domain.View, error)
	DeleteFn         func(ctx context.Context, blackID uint64) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, blackID uint64) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, blackID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByVisitorID(ctx context.Context, visitorID uint64) (*domain.Entry, error) {
	if m.GetByVisitorIDFn != nil {
		return m.GetByVisitorIDFn(ctx, visitorID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.View, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) Delete(ctx context.Context, blackID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, blackID)
	}
	return nil
}
