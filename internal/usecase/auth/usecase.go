package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"themis-backend/internal/domain/uow"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visitor"
	"themis-backend/pkg/id"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	users user.Repository
	uow   uow.UnitOfWork
	cfg   Config
	log   *zap.Logger
	now   func() time.Time
}

// NewUsecase: users serves reads outside a tx, tx runs signup.
func NewUsecase(users user.Repository, tx uow.UnitOfWork, cfg Config, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Usecase{users: users, uow: tx, cfg: cfg, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	ok, legacy := checkPassword(usr.PasswordHash, password, u.cfg.AllowLegacyPlaintext)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if legacy {
		u.log.Warn("legacy plaintext password accepted, upgrading to bcrypt",
			zap.Uint64("user_id", usr.UserID), zap.String("username", usr.Username))
		if hash, err := HashPassword(password); err != nil {
			u.log.Error("rehash legacy password", zap.Uint64("user_id", usr.UserID), zap.Error(err))
		} else if err := u.users.UpdatePasswordHash(ctx, usr.UserID, hash); err != nil {
			u.log.Error("store upgraded password hash", zap.Uint64("user_id", usr.UserID), zap.Error(err))
		}
	}

	now := u.now()
	if err := u.users.TouchLastLogin(ctx, usr.UserID, now); err != nil {
		u.log.Warn("update last_login", zap.Uint64("user_id", usr.UserID), zap.Error(err))
	}

	token, exp, err := u.issue(usr.UserID, now)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: usr.UserID, Username: usr.Username, RoleID: usr.RoleID, ExpiresAt: exp}, nil
}

func (u *Usecase) issue(userID uint64, now time.Time) (string, time.Time, error) {
	exp := now.Add(u.cfg.TTL)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.NewID32(),
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Validate resolves a raw token (no scheme) to the caller's identity.
func (u *Usecase) Validate(ctx context.Context, token string) (*user.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return u.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &user.Identity{UserID: usr.UserID, Username: usr.Username, RoleID: usr.RoleID, VisitorID: usr.VisitorID}, nil
}

// TokenFromHeader accepts "Bearer <token>" or a bare token.
// Any other scheme yields "".
func TokenFromHeader(h string) string {
	parts := strings.Fields(h)
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		if strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}

// Signup registers a self-service visitor account: a Visitor row plus a User linked to it.
func (u *Usecase) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	taken, err := u.users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrUsernameTaken
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		taken, err := u.users.EmailExists(ctx, email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, user.ErrEmailTaken
		}
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	first, last := signupNames(in)
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(first + " " + last)
	}

	var res *SignupResult
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		v := &visitor.Visitor{FirstName: first, LastName: last, RelationshipToPUC: in.Relationship}
		if err := r.Visitors.Create(ctx, v); err != nil {
			return err
		}
		vid := v.VisitorID
		usr := &user.User{
			RoleID:       user.RoleVisitor,
			Username:     in.Username,
			PasswordHash: hash,
			FullName:     fullName,
			VisitorID:    &vid,
		}
		if email != "" {
			usr.Email = &email
		}
		if err := r.Users.Create(ctx, usr); err != nil {
			return err
		}
		res = &SignupResult{UserID: usr.UserID, Username: usr.Username, RoleID: usr.RoleID, VisitorID: vid}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race on one of the unique indexes; tx is rolled back, see which one
			if email != "" {
				if taken, _ := u.users.EmailExists(ctx, email); taken {
					return nil, user.ErrEmailTaken
				}
			}
			return nil, user.ErrUsernameTaken
		}
		return nil, err
	}
	return res, nil
}

func signupNames(in SignupInput) (string, string) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" && last == "" {
		parts := strings.Fields(in.FullName)
		if len(parts) > 0 {
			first = parts[0]
			last = strings.Join(parts[1:], " ")
		}
	}
	if first == "" {
		first = in.Username
	}
	return first, last
}

func (u *Usecase) Profile(ctx context.Context, id user.Identity) (*Profile, error) {
	usr, err := u.users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &Profile{
		UserID:    usr.UserID,
		Username:  usr.Username,
		RoleID:    usr.RoleID,
		RoleName:  user.RoleNames[usr.RoleID],
		Email:     usr.Email,
		FullName:  usr.FullName,
		VisitorID: usr.VisitorID,
		LastLogin: usr.LastLogin,
	}, nil
}

// EnsureAdmin creates an Admin account when username is set and not taken.
func (u *Usecase) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" {
		return false, nil
	}
	_, err := u.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	usr := &user.User{RoleID: user.RoleAdmin, Username: username, PasswordHash: hash, FullName: "Administrator"}
	if err := u.users.Create(ctx, usr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	u.log.Info("bootstrap admin created", zap.String("username", username), zap.Uint64("user_id", usr.UserID))
	return true, nil
}
