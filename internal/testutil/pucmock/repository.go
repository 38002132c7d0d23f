package pucmock

import (
	"context"

	domain "themis-backend/internal/domain/puc"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, p *domain.PUC) error
	GetByIDFn        func(ctx context.Context, pucID uint64) (*domain.PUC, error)
	GetViewFn        func(ctx context.Context, pucID uint64) (*domain.View, error)
	SaveFn           func(ctx context.Context, p *domain.PUC) error
	SearchFn         func(ctx context.Context, term string) ([]domain.View, error)
	ListCategoriesFn func(ctx context.Context) ([]domain.Category, error)
	ListCrimeTypesFn func(ctx context.Context) ([]domain.CrimeType, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.PUC) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, pucID uint64) (*domain.PUC, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, pucID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetView(ctx context.Context, pucID uint64) (*domain.View, error) {
	if m.GetViewFn != nil {
		return m.GetViewFn(ctx, pucID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, p *domain.PUC) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Search(ctx context.Context, term string) ([]domain.View, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, term)
	}
	return nil, context.Canceled
}

func (m *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListCrimeTypes(ctx context.Context) ([]domain.CrimeType, error) {
	if m.ListCrimeTypesFn != nil {
		return m.ListCrimeTypesFn(ctx)
	}
	return nil, context.Canceled
}
