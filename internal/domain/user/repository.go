package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uint64) (*User, error)
	// exact, case-sensitive match
	GetByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	UpdatePasswordHash(ctx context.Context, userID uint64, hash string) error
	UpdateRole(ctx context.Context, userID uint64, roleID uint) error
	TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error
	Delete(ctx context.Context, userID uint64) error

	List(ctx context.Context) ([]View, error)
}
