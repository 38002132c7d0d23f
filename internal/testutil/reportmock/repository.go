package reportmock

import (
	"context"
	"time"

	domain "themis-backend/internal/domain/report"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset list methods return empty results.
type Repo struct {
	PUCRowsFn          func(ctx context.Context, f domain.PUCFilter) ([]domain.PUCRow, error)
	VisitRowsFn        func(ctx context.Context, f domain.VisitFilter) ([]domain.VisitRow, error)
	PUCStatusCountsFn  func(ctx context.Context) ([]domain.StatusCount, error)
	CategoryCountsFn   func(ctx context.Context) ([]domain.NameCount, error)
	RecentlyReleasedFn func(ctx context.Context, limit int) ([]domain.PUCRow, error)
	RecentlyAddedFn    func(ctx context.Context, limit int) ([]domain.PUCRow, error)
	CountsFn           func(ctx context.Context, today time.Time) (*domain.Counts, error)
	UsersByRoleFn      func(ctx context.Context) ([]domain.NameCount, error)
}

func (m *Repo) PUCRows(ctx context.Context, f domain.PUCFilter) ([]domain.PUCRow, error) {
	if m.PUCRowsFn != nil {
		return m.PUCRowsFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) VisitRows(ctx context.Context, f domain.VisitFilter) ([]domain.VisitRow, error) {
	if m.VisitRowsFn != nil {
		return m.VisitRowsFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) PUCStatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	if m.PUCStatusCountsFn != nil {
		return m.PUCStatusCountsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CategoryCounts(ctx context.Context) ([]domain.NameCount, error) {
	if m.CategoryCountsFn != nil {
		return m.CategoryCountsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) RecentlyReleased(ctx context.Context, limit int) ([]domain.PUCRow, error) {
	if m.RecentlyReleasedFn != nil {
		return m.RecentlyReleasedFn(ctx, limit)
	}
	return nil, nil
}

func (m *Repo) RecentlyAdded(ctx context.Context, limit int) ([]domain.PUCRow, error) {
	if m.RecentlyAddedFn != nil {
		return m.RecentlyAddedFn(ctx, limit)
	}
	return nil, nil
}

func (m *Repo) Counts(ctx context.Context, today time.Time) (*domain.Counts, error) {
	if m.CountsFn != nil {
		return m.CountsFn(ctx, today)
	}
	return &domain.Counts{}, nil
}

func (m *Repo) UsersByRole(ctx context.Context) ([]domain.NameCount, error) {
	if m.UsersByRoleFn != nil {
		return m.UsersByRoleFn(ctx)
	}
	return nil, nil
}
