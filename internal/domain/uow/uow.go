package uow

import (
	"context"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"
)

// Repos are bound to one transaction.
type Repos struct {
	Users     user.Repository
	PUCs      puc.Repository
	Visitors  visitor.Repository
	Visits    visit.Repository
	Blacklist blacklist.Repository
	Audit     audit.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the visit row first, then pass it in
	WithinVisitTx(ctx context.Context, logID uint64, fn func(r Repos, l *visit.Log) error) error
}
