package puc

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"
	"themis-backend/internal/usecase/provisioning"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	pucs     domain.Repository
	visitors visitor.Repository
	uow      uow.UnitOfWork
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(pucs domain.Repository, visitors visitor.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{pucs: pucs, visitors: visitors, uow: tx, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Search(ctx context.Context, term string) ([]PUCDTO, error) {
	rows, err := u.pucs.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	out := make([]PUCDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, fromView(v))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, pucID uint64) (*DetailDTO, error) {
	v, err := u.pucs.GetView(ctx, pucID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	approved, err := u.visitors.ListApprovedByPUC(ctx, pucID)
	if err != nil {
		return nil, err
	}
	out := &DetailDTO{PUCDTO: fromView(*v), ApprovedVisitors: make([]ApprovedVisitorDTO, 0, len(approved))}
	for _, a := range approved {
		out.ApprovedVisitors = append(out.ApprovedVisitors, fromApproved(a))
	}
	return out, nil
}

// Create inserts the PUC and provisions every approved visitor in the same transaction.
func (u *Usecase) Create(ctx context.Context, actor user.Identity, in CreateInput) (*SaveResult, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, domain.ErrNameRequired
	}

	var out *SaveResult
	err := provisioning.RetryOnConflict(ctx, u.log, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			p := &domain.PUC{
				FirstName:   first,
				LastName:    last,
				Gender:      in.Gender,
				Age:         in.Age,
				ArrestDate:  dateOnly(in.ArrestDate),
				ReleaseDate: dateOnly(in.ReleaseDate),
				Status:      strings.TrimSpace(in.Status),
				CategoryID:  in.CategoryID,
				CrimeID:     in.CrimeID,
				MugshotPath: in.MugshotPath,
			}
			if p.Status == "" {
				p.Status = domain.StatusInCustody
			}
			u.applyReleaseRule(p)
			if err := r.PUCs.Create(ctx, p); err != nil {
				return err
			}

			provisioned, err := provisionAll(ctx, r, actor, p.PUCID, in.ApprovedVisitors)
			if err != nil {
				return err
			}
			out = &SaveResult{PUC: fromPUC(p), Provisioned: provisioned}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields and provisions approved visitors that have no ApprovalID yet.
func (u *Usecase) Update(ctx context.Context, actor user.Identity, pucID uint64, in UpdateInput) (*SaveResult, error) {
	var out *SaveResult
	err := provisioning.RetryOnConflict(ctx, u.log, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			p, err := r.PUCs.GetByID(ctx, pucID)
			if err != nil {
				return err
			}
			if err := applyUpdate(p, in); err != nil {
				return err
			}
			u.applyReleaseRule(p)
			if err := r.PUCs.Save(ctx, p); err != nil {
				return err
			}

			provisioned, err := provisionAll(ctx, r, actor, p.PUCID, in.ApprovedVisitors)
			if err != nil {
				return err
			}
			out = &SaveResult{PUC: fromPUC(p), Provisioned: provisioned}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func applyUpdate(p *domain.PUC, in UpdateInput) error {
	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if p.FirstName == "" || p.LastName == "" {
		return domain.ErrNameRequired
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Age != nil {
		p.Age = in.Age
	}
	if in.ArrestDate != nil {
		p.ArrestDate = dateOnly(in.ArrestDate)
	}
	if in.ReleaseDate != nil {
		p.ReleaseDate = dateOnly(in.ReleaseDate)
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		p.Status = strings.TrimSpace(*in.Status)
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.CrimeID != nil {
		p.CrimeID = in.CrimeID
	}
	if in.MugshotPath != nil {
		p.MugshotPath = *in.MugshotPath
	}
	return nil
}

// applyReleaseRule keeps release_date set only while the PUC is Released.
func (u *Usecase) applyReleaseRule(p *domain.PUC) {
	if p.Status != domain.StatusReleased {
		p.ReleaseDate = nil
		return
	}
	if p.ReleaseDate == nil {
		now := u.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		p.ReleaseDate = &today
	}
}

func provisionAll(ctx context.Context, r uow.Repos, actor user.Identity, pucID uint64, in []VisitorInput) ([]provisioning.Result, error) {
	out := make([]provisioning.Result, 0, len(in))
	for _, v := range in {
		if v.ApprovalID != nil {
			continue
		}
		res, err := provisioning.ProvisionInTx(ctx, r, provisioning.Input{
			PUCID:        pucID,
			FirstName:    v.FirstName,
			LastName:     v.LastName,
			Relationship: v.Relationship,
			Email:        v.Email,
			Phone:        v.Phone,
			ActorID:      actor.UserID,
			IP:           actor.IP,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func (u *Usecase) Categories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := u.pucs.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, CategoryDTO{CategoryID: c.CategoryID, Name: c.Name, Description: c.Description})
	}
	return out, nil
}

func (u *Usecase) CrimeTypes(ctx context.Context) ([]CrimeTypeDTO, error) {
	rows, err := u.pucs.ListCrimeTypes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CrimeTypeDTO, 0, len(rows))
	for _, c := range rows {
		out = append(out, CrimeTypeDTO{CrimeID: c.CrimeID, CategoryID: c.CategoryID, Name: c.Name, LawReference: c.LawReference, Description: c.Description})
	}
	return out, nil
}
