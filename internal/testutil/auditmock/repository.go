package auditmock

import (
	"context"
	"sync"

	domain "themis-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// With no CreateFn set it records created rows in Created.
type Repo struct {
	CreateFn func(ctx context.Context, l *domain.Log) error
	ListFn   func(ctx context.Context, limit int) ([]domain.View, error)

	mu      sync.Mutex
	Created []domain.Log
}

func (m *Repo) Create(ctx context.Context, l *domain.Log) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *l)
	return nil
}

func (m *Repo) List(ctx context.Context, limit int) ([]domain.View, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return nil, context.Canceled
}
