package mysql

import (
	"context"

	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/visit"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bindRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:     &UserRepository{db: tx},
		PUCs:      &PUCRepository{db: tx},
		Visitors:  &VisitorRepository{db: tx},
		Visits:    &VisitRepository{db: tx},
		Blacklist: &BlacklistRepository{db: tx},
		Audit:     &AuditRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bindRepos(tx))
	})
}

func (u *GormUoW) WithinVisitTx(ctx context.Context, logID uint64, fn func(r uow.Repos, l *visit.Log) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bindRepos(tx)
		// lock the visit row up-front so concurrent decisions serialize
		l, err := r.Visits.GetByIDForUpdate(ctx, logID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
