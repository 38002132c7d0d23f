package visit

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	GetByID(ctx context.Context, logID uint64) (*Log, error)
	// Row lock (SELECT ... FOR UPDATE) where the dialect has one; call inside a tx.
	GetByIDForUpdate(ctx context.Context, logID uint64) (*Log, error)
	Save(ctx context.Context, l *Log) error
	// Newest first.
	List(ctx context.Context, f Filter) ([]View, error)
}
