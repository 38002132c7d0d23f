package report

import (
	"context"
	"time"
)

// Repository is read only.
type Repository interface {
	PUCRows(ctx context.Context, f PUCFilter) ([]PUCRow, error)
	VisitRows(ctx context.Context, f VisitFilter) ([]VisitRow, error)

	PUCStatusCounts(ctx context.Context) ([]StatusCount, error)
	CategoryCounts(ctx context.Context) ([]NameCount, error)
	RecentlyReleased(ctx context.Context, limit int) ([]PUCRow, error)
	RecentlyAdded(ctx context.Context, limit int) ([]PUCRow, error)

	// today is the start of the UTC day used for TodayVisits.
	Counts(ctx context.Context, today time.Time) (*Counts, error)
	UsersByRole(ctx context.Context) ([]NameCount, error)
}
