package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"
	"themis-backend/internal/usecase/auth"
	"themis-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxUsernameRunes  = 15
	passwordLength    = 8
	storedPasswordMax = 20
	maxSuffix         = 100000

	// MaxAttempts bounds retries after a lost username race.
	MaxAttempts = 3
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

// Provision creates visitor, user and approved-visitor rows for a PUC in one transaction.
func (u *Usecase) Provision(ctx context.Context, in Input) (*Result, error) {
	var res *Result
	err := RetryOnConflict(ctx, u.log, func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			var err error
			res, err = ProvisionInTx(ctx, r, in)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RetryOnConflict reruns fn while it fails with a duplicate key, up to MaxAttempts.
// The final duplicate is reported as user.ErrUsernameTaken.
func RetryOnConflict(ctx context.Context, log *zap.Logger, fn func() error) error {
	var err error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err = fn(); err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("unique key conflict while provisioning, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	return fmt.Errorf("%w: %v", user.ErrUsernameTaken, err)
}

// ProvisionInTx runs the workflow against repos already bound to a transaction.
func ProvisionInTx(ctx context.Context, r uow.Repos, in Input) (*Result, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return nil, puc.ErrNameRequired
	}
	if _, err := r.PUCs.GetByID(ctx, in.PUCID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, puc.ErrNotFound
		}
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		taken, err := r.Users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, user.ErrEmailTaken
		}
	}

	username, err := UniqueUsername(ctx, r.Users, BaseUsername(first, last))
	if err != nil {
		return nil, err
	}
	password := id.NewAlphanumeric(passwordLength)

	v := &visitor.Visitor{FirstName: first, LastName: last, RelationshipToPUC: in.Relationship}
	if err := r.Visitors.Create(ctx, v); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	vid := v.VisitorID
	usr := &user.User{
		RoleID:       user.RoleVisitor,
		Username:     username,
		PasswordHash: hash,
		FullName:     first + " " + last,
		VisitorID:    &vid,
	}
	if email != "" {
		usr.Email = &email
	}
	if err := r.Users.Create(ctx, usr); err != nil {
		return nil, err
	}

	uid := usr.UserID
	av := &visitor.ApprovedVisitor{
		PUCID:          in.PUCID,
		FirstName:      first,
		LastName:       last,
		Relationship:   in.Relationship,
		Email:          email,
		Phone:          in.Phone,
		VisitorID:      &vid,
		UserID:         &uid,
		Username:       username,
		Password:       truncate(password, storedPasswordMax),
		AccountCreated: true,
	}
	if err := r.Visitors.CreateApproved(ctx, av); err != nil {
		return nil, err
	}

	entry := &audit.Log{
		EventType: audit.EventVisitorProvisioned,
		IPAddress: in.IP,
		Notes:     fmt.Sprintf("Visitor account %s created for PUC #%d", username, in.PUCID),
	}
	if in.ActorID != 0 {
		actor := in.ActorID
		entry.UserID = &actor
	}
	if err := r.Audit.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &Result{
		ApprovalID:   av.ApprovalID,
		PUCID:        in.PUCID,
		VisitorID:    vid,
		UserID:       uid,
		FirstName:    first,
		LastName:     last,
		Relationship: in.Relationship,
		Email:        email,
		Phone:        in.Phone,
		Username:     username,
		Password:     password,
	}, nil
}

// BaseUsername is the lowercased first initial plus last name, whitespace removed,
// at most 15 runes.
func BaseUsername(first, last string) string {
	var initial string
	for _, r := range strings.TrimSpace(first) {
		initial = string(r)
		break
	}
	var b strings.Builder
	for _, r := range strings.ToLower(initial + last) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	runes := []rune(b.String())
	if len(runes) > maxUsernameRunes {
		runes = runes[:maxUsernameRunes]
	}
	return string(runes)
}

// UniqueUsername probes base, then base1, base2, ... until one is free.
func UniqueUsername(ctx context.Context, users user.Repository, base string) (string, error) {
	candidate := base
	for i := 1; i <= maxSuffix; i++ {
		taken, err := users.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(i)
	}
	return "", user.ErrUsernameTaken
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
