package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("token is missing")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

type Config struct {
	Secret []byte
	TTL    time.Duration
	// AllowLegacyPlaintext accepts stored plaintext passwords once and upgrades them to bcrypt.
	AllowLegacyPlaintext bool
}

// Claims is the JWT payload.
type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string    `json:"token"`
	UserID    uint64    `json:"user_id"`
	Username  string    `json:"username"`
	RoleID    uint      `json:"role_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SignupInput struct {
	Username     string
	Password     string
	Email        string
	FullName     string
	FirstName    string
	LastName     string
	Relationship string
}

type SignupResult struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	RoleID    uint   `json:"role_id"`
	VisitorID uint64 `json:"visitor_id"`
}

type Profile struct {
	UserID    uint64     `json:"user_id"`
	Username  string     `json:"username"`
	RoleID    uint       `json:"role_id"`
	RoleName  string     `json:"role_name"`
	Email     *string    `json:"email"`
	FullName  string     `json:"full_name"`
	VisitorID *uint64    `json:"visitor_id"`
	LastLogin *time.Time `json:"last_login"`
}
