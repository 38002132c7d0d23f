package visit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	domain "themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

type Usecase struct {
	visits domain.Repository
	uow    uow.UnitOfWork
	now    func() time.Time
}

func NewUsecase(visits domain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{visits: visits, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

// Submit files a Pending visit request.
func (u *Usecase) Submit(ctx context.Context, actor user.Identity, in SubmitInput) (*VisitDTO, error) {
	visitorID := in.VisitorID
	if visitorID == nil {
		visitorID = actor.VisitorID
	}
	if visitorID == nil {
		return nil, domain.ErrNoLinkedVisitor
	}
	if actor.RoleID == user.RoleVisitor && (actor.VisitorID == nil || *actor.VisitorID != *visitorID) {
		return nil, user.ErrForbidden
	}
	if _, err := time.Parse("15:04", in.VisitTime); err != nil || len(in.VisitTime) != 5 {
		return nil, domain.ErrInvalidTime
	}

	var out *VisitDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.PUCs.GetByID(ctx, in.PUCID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return puc.ErrNotFound
			}
			return err
		}
		if _, err := r.Visitors.GetByID(ctx, *visitorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return visitor.ErrNotFound
			}
			return err
		}
		switch _, err := r.Blacklist.GetByVisitorID(ctx, *visitorID); {
		case err == nil:
			return domain.ErrVisitorBlacklisted
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		d := in.VisitDate.UTC()
		l := &domain.Log{
			PUCID:          in.PUCID,
			VisitorID:      *visitorID,
			VisitDate:      time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			VisitTime:      in.VisitTime,
			Purpose:        strings.TrimSpace(in.Purpose),
			PhotoPath:      in.PhotoPath,
			ApprovalStatus: domain.StatusPending,
		}
		if err := r.Visits.Create(ctx, l); err != nil {
			return err
		}
		out = fromLog(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decide moves a Pending request to Approved or Rejected and writes one audit row.
func (u *Usecase) Decide(ctx context.Context, actor user.Identity, logID uint64, decision domain.Status) (*VisitDTO, error) {
	if !user.IsStaff(actor.RoleID) {
		return nil, user.ErrForbidden
	}

	var out *VisitDTO
	err := u.uow.WithinVisitTx(ctx, logID, func(r uow.Repos, l *domain.Log) error {
		if decision != domain.StatusApproved && decision != domain.StatusRejected {
			return domain.ErrInvalidDecision
		}
		if l.ApprovalStatus.Terminal() {
			return domain.ErrAlreadyDecided
		}

		now := u.now()
		approver := actor.UserID
		l.ApprovalStatus = decision
		l.ApprovedBy = &approver
		l.ApprovalDate = &now
		if err := r.Visits.Save(ctx, l); err != nil {
			return err
		}

		event := audit.EventVisitApproved
		if decision == domain.StatusRejected {
			event = audit.EventVisitRejected
		}
		if err := r.Audit.Create(ctx, &audit.Log{
			UserID:    &approver,
			EventType: event,
			IPAddress: actor.IP,
			Notes:     fmt.Sprintf("Visit request #%d %s", l.VisitorLogID, strings.ToLower(string(decision))),
		}); err != nil {
			return err
		}
		out = fromLog(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

// List shows visitors their own requests and staff everything.
func (u *Usecase) List(ctx context.Context, actor user.Identity, status string) ([]VisitDTO, error) {
	if user.IsStaff(actor.RoleID) {
		return u.list(ctx, domain.Filter{}, status)
	}
	return u.ListMine(ctx, actor, status)
}

func (u *Usecase) ListMine(ctx context.Context, actor user.Identity, status string) ([]VisitDTO, error) {
	if actor.VisitorID == nil {
		return []VisitDTO{}, nil
	}
	vid := *actor.VisitorID
	return u.list(ctx, domain.Filter{VisitorID: &vid}, status)
}

func (u *Usecase) Pending(ctx context.Context) ([]VisitDTO, error) {
	return u.list(ctx, domain.Filter{}, string(domain.StatusPending))
}

func (u *Usecase) list(ctx context.Context, f domain.Filter, status string) ([]VisitDTO, error) {
	if status != "" {
		s := domain.Status(status)
		if !s.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		f.Status = s
	}
	rows, err := u.visits.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]VisitDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, fromView(v))
	}
	return out, nil
}
