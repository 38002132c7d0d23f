package visitmock

import (
	"context"

	domain "themis-backend/internal/domain/visit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, l *domain.Log) error
	GetByIDFn          func(ctx context.Context, logID uint64) (*domain.Log, error)
	GetByIDForUpdateFn func(ctx context.Context, logID uint64) (*domain.Log, error)
	SaveFn             func(ctx context.Context, l *domain.Log) error
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.View, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Log) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, logID uint64) (*domain.Log, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, logID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, logID uint64) (*domain.Log, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, logID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Log) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.View, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, context.Canceled
}
