package audit

import "context"

type Repository interface {
	Create(ctx context.Context, l *Log) error
	// Newest first; limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]View, error)
}
