package blacklist

import "context"

type Repository interface {
	// Unique on visitor_id: a second insert fails with gorm.ErrDuplicatedKey.
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, blackID uint64) (*Entry, error)
	GetByVisitorID(ctx context.Context, visitorID uint64) (*Entry, error)
	// Newest first.
	List(ctx context.Context) ([]View, error)
	Delete(ctx context.Context, blackID uint64) error
}
