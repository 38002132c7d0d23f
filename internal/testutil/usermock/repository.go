package usermock

import (
	"context"
	"time"

	domain "themis-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Writes and existence probes default to success; reads return context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, u *domain.User) error
	GetByIDFn            func(ctx context.Context, userID uint64) (*domain.User, error)
	GetByUsernameFn      func(ctx context.Context, username string) (*domain.User, error)
	UsernameExistsFn     func(ctx context.Context, username string) (bool, error)
	EmailExistsFn        func(ctx context.Context, email string) (bool, error)
	UpdatePasswordHashFn func(ctx context.Context, userID uint64, hash string) error
	UpdateRoleFn         func(ctx context.Context, userID uint64, roleID uint) error
	TouchLastLoginFn     func(ctx context.Context, userID uint64, at time.Time) error
	DeleteFn             func(ctx context.Context, userID uint64) error
	ListFn               func(ctx context.Context) ([]domain.View, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, userID uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, context.Canceled
}

func (m *Repo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.UsernameExistsFn != nil {
		return m.UsernameExistsFn(ctx, username)
	}
	return false, nil
}

func (m *Repo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.EmailExistsFn != nil {
		return m.EmailExistsFn(ctx, email)
	}
	return false, nil
}

func (m *Repo) UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error {
	if m.UpdatePasswordHashFn != nil {
		return m.UpdatePasswordHashFn(ctx, userID, hash)
	}
	return nil
}

func (m *Repo) UpdateRole(ctx context.Context, userID uint64, roleID uint) error {
	if m.UpdateRoleFn != nil {
		return m.UpdateRoleFn(ctx, userID, roleID)
	}
	return nil
}

func (m *Repo) TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error {
	if m.TouchLastLoginFn != nil {
		return m.TouchLastLoginFn(ctx, userID, at)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, userID uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID)
	}
	return nil
}

func (m *Repo) List(ctx context.Context) ([]domain.View, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
