package blacklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"themis-backend/internal/domain/audit"
	domain "themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

type AddInput struct {
	VisitorID uint64
	PUCID     *uint64
	Reason    string
}

type EntryDTO struct {
	BlackID     uint64    `json:"black_id"`
	VisitorID   uint64    `json:"visitor_id"`
	VisitorName string    `json:"visitor_name,omitempty"`
	PUCID       *uint64   `json:"pupc_id"`
	PUCName     string    `json:"puc_name,omitempty"`
	Reason      string    `json:"reason"`
	AddedAt     time.Time `json:"added_at"`
}

type Usecase struct {
	entries domain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(entries domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{entries: entries, uow: tx}
}

func (u *Usecase) Add(ctx context.Context, actor user.Identity, in AddInput) (*EntryDTO, error) {
	if !user.IsStaff(actor.RoleID) {
		return nil, user.ErrForbidden
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = domain.DefaultReason
	}

	var out *EntryDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		v, err := r.Visitors.GetByID(ctx, in.VisitorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return visitor.ErrNotFound
			}
			return err
		}
		switch _, err := r.Blacklist.GetByVisitorID(ctx, in.VisitorID); {
		case err == nil:
			return domain.ErrAlreadyBlacklisted
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		var pucName string
		if in.PUCID != nil {
			p, err := r.PUCs.GetByID(ctx, *in.PUCID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return puc.ErrNotFound
				}
				return err
			}
			pucName = p.Name()
		}

		e := &domain.Entry{PUCID: in.PUCID, VisitorID: in.VisitorID, Reason: reason}
		if err := r.Blacklist.Create(ctx, e); err != nil {
			return err
		}

		actorID := actor.UserID
		if err := r.Audit.Create(ctx, &audit.Log{
			UserID:    &actorID,
			EventType: audit.EventBlacklistAdded,
			IPAddress: actor.IP,
			Notes:     fmt.Sprintf("Visitor #%d blacklisted: %s", in.VisitorID, reason),
		}); err != nil {
			return err
		}

		out = &EntryDTO{
			BlackID:     e.BlackID,
			VisitorID:   e.VisitorID,
			VisitorName: v.Name(),
			PUCID:       e.PUCID,
			PUCName:     pucName,
			Reason:      e.Reason,
			AddedAt:     e.AddedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyBlacklisted
		}
		return nil, err
	}
	return out, nil
}

func (u *Usecase) List(ctx context.Context) ([]EntryDTO, error) {
	rows, err := u.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, EntryDTO{
			BlackID:     v.BlackID,
			VisitorID:   v.VisitorID,
			VisitorName: v.VisitorName(),
			PUCID:       v.PUCID,
			PUCName:     v.PUCName(),
			Reason:      v.Reason,
			AddedAt:     v.AddedAt,
		})
	}
	return out, nil
}

func (u *Usecase) Remove(ctx context.Context, actor user.Identity, blackID uint64) error {
	if !user.IsStaff(actor.RoleID) {
		return user.ErrForbidden
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Blacklist.GetByID(ctx, blackID)
		if err != nil {
			return err
		}
		if err := r.Blacklist.Delete(ctx, blackID); err != nil {
			return err
		}
		actorID := actor.UserID
		return r.Audit.Create(ctx, &audit.Log{
			UserID:    &actorID,
			EventType: audit.EventBlacklistRemoved,
			IPAddress: actor.IP,
			Notes:     fmt.Sprintf("Visitor #%d removed from blacklist", e.VisitorID),
		})
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
