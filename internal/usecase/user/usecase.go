package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/uow"
	domain "themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

type UserDTO struct {
	UserID    uint64     `json:"user_id"`
	Username  string     `json:"username"`
	RoleID    uint       `json:"role_id"`
	RoleName  string     `json:"role_name"`
	Email     *string    `json:"email"`
	FullName  string     `json:"full_name"`
	VisitorID *uint64    `json:"visitor_id"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

type ApprovedVisitorDTO struct {
	ApprovalID   uint64    `json:"approval_id"`
	PUCID        uint64    `json:"pupc_id"`
	PUCName      string    `json:"puc_name"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	FullName     string    `json:"full_name"`
	Relationship string    `json:"relationship"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	VisitorID    *uint64   `json:"visitor_id"`
	UserID       *uint64   `json:"user_id"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
}

type VisitorDTO struct {
	VisitorID    uint64    `json:"visitor_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Relationship string    `json:"relationship_to_puc"`
	PhotoPath    string    `json:"photo_path"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Usecase covers account administration and the visitor directory.
type Usecase struct {
	users    domain.Repository
	visitors visitor.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(users domain.Repository, visitors visitor.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{users: users, visitors: visitors, uow: tx}
}

func (u *Usecase) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, UserDTO{
			UserID:    v.UserID,
			Username:  v.Username,
			RoleID:    v.RoleID,
			RoleName:  v.RoleName,
			Email:     v.Email,
			FullName:  v.FullName,
			VisitorID: v.VisitorID,
			CreatedAt: v.CreatedAt,
			LastLogin: v.LastLogin,
		})
	}
	return out, nil
}

func (u *Usecase) ApprovedVisitors(ctx context.Context) ([]ApprovedVisitorDTO, error) {
	rows, err := u.visitors.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ApprovedVisitorDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, ApprovedVisitorDTO{
			ApprovalID:   v.ApprovalID,
			PUCID:        v.PUCID,
			PUCName:      v.PUCName(),
			FirstName:    v.FirstName,
			LastName:     v.LastName,
			FullName:     v.FirstName + " " + v.LastName,
			Relationship: v.Relationship,
			Email:        v.Email,
			Phone:        v.Phone,
			VisitorID:    v.VisitorID,
			UserID:       v.UserID,
			Username:     v.Username,
			CreatedAt:    v.CreatedAt,
		})
	}
	return out, nil
}

func (u *Usecase) Visitors(ctx context.Context) ([]VisitorDTO, error) {
	rows, err := u.visitors.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VisitorDTO, 0, len(rows))
	for _, v := range rows {
		out = append(out, VisitorDTO{
			VisitorID:    v.VisitorID,
			FirstName:    v.FirstName,
			LastName:     v.LastName,
			Relationship: v.RelationshipToPUC,
			PhotoPath:    v.PhotoPath,
			RegisteredAt: v.RegisteredAt,
		})
	}
	return out, nil
}

// Delete removes an account and the approved-visitor rows pointing at it.
func (u *Usecase) Delete(ctx context.Context, actor domain.Identity, userID uint64) error {
	if actor.RoleID != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if actor.UserID == userID {
		return domain.ErrCannotDeleteSelf
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		target, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		n, err := r.Visitors.DeleteApprovedByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if err := r.Users.Delete(ctx, userID); err != nil {
			return err
		}
		actorID := actor.UserID
		return r.Audit.Create(ctx, &audit.Log{
			UserID:    &actorID,
			EventType: audit.EventUserDeleted,
			IPAddress: actor.IP,
			Notes:     fmt.Sprintf("User %s (#%d) deleted, %d approved visitor rows removed", target.Username, userID, n),
		})
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

func (u *Usecase) UpdateRole(ctx context.Context, actor domain.Identity, userID uint64, roleID uint) (*UserDTO, error) {
	if actor.RoleID != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if _, ok := domain.RoleNames[roleID]; !ok {
		return nil, domain.ErrInvalidRole
	}

	var out *UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		target, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		from := target.RoleID
		if err := r.Users.UpdateRole(ctx, userID, roleID); err != nil {
			return err
		}
		actorID := actor.UserID
		if err := r.Audit.Create(ctx, &audit.Log{
			UserID:    &actorID,
			EventType: audit.EventUserRoleChanged,
			IPAddress: actor.IP,
			Notes:     fmt.Sprintf("User %s (#%d) role %s -> %s", target.Username, userID, domain.RoleNames[from], domain.RoleNames[roleID]),
		}); err != nil {
			return err
		}
		out = &UserDTO{
			UserID:    target.UserID,
			Username:  target.Username,
			RoleID:    roleID,
			RoleName:  domain.RoleNames[roleID],
			Email:     target.Email,
			FullName:  target.FullName,
			VisitorID: target.VisitorID,
			CreatedAt: target.CreatedAt,
			LastLogin: target.LastLogin,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return out, nil
}
