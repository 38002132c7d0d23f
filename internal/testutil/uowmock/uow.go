package uowmock

import (
	"context"
	"errors"

	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/visit"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn      func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinVisitTxFn func(ctx context.Context, logID uint64, fn func(r uow.Repos, l *visit.Log) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinVisitTx(fn func(context.Context, uint64, func(uow.Repos, *visit.Log) error) error) *UoW {
	m.WithinVisitTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs callbacks directly against repos, locking via repos.Visits.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinVisitTxFn: func(ctx context.Context, logID uint64, fn func(r uow.Repos, l *visit.Log) error) error {
			l, err := repos.Visits.GetByIDForUpdate(ctx, logID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinVisitTx(ctx context.Context, logID uint64, fn func(r uow.Repos, l *visit.Log) error) error {
	if m.WithinVisitTxFn != nil {
		return m.WithinVisitTxFn(ctx, logID, fn)
	}
	return errUnimplemented
}
