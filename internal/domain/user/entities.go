package user

import (
	"errors"
	"time"
)

// Seeded role ids.
const (
	RoleAdmin   uint = 1
	RoleOfficer uint = 2
	RoleVisitor uint = 3
)

var RoleNames = map[uint]string{
	RoleAdmin:   "Admin",
	RoleOfficer: "Officer",
	RoleVisitor: "Visitor",
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
	ErrForbidden        = errors.New("forbidden")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
	ErrInvalidRole      = errors.New("invalid role")
)

type Role struct {
	RoleID uint   `gorm:"column:role_id;primaryKey"`
	Name   string `gorm:"column:name;size:50;not null"`
}

func (Role) TableName() string { return "roles" }

type User struct {
	UserID       uint64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	RoleID       uint       `gorm:"column:role_id;not null;index"`
	Username     string     `gorm:"column:username;size:50;not null;uniqueIndex:ux_users_username"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null"`
	Email        *string    `gorm:"column:email;size:100;uniqueIndex:ux_users_email"`
	FullName     string     `gorm:"column:full_name;size:100"`
	VisitorID    *uint64    `gorm:"column:visitor_id;index"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastLogin    *time.Time `gorm:"column:last_login"`
}

func (User) TableName() string { return "users" }

// View is a user row joined with its role name.
type View struct {
	UserID    uint64     `gorm:"column:user_id"`
	Username  string     `gorm:"column:username"`
	RoleID    uint       `gorm:"column:role_id"`
	RoleName  string     `gorm:"column:role_name"`
	Email     *string    `gorm:"column:email"`
	FullName  string     `gorm:"column:full_name"`
	VisitorID *uint64    `gorm:"column:visitor_id"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	LastLogin *time.Time `gorm:"column:last_login"`
}

// HasRole reports whether roleID is one of allowed.
func HasRole(roleID uint, allowed ...uint) bool {
	for _, r := range allowed {
		if r == roleID {
			return true
		}
	}
	return false
}

// IsStaff is true for admins and officers.
func IsStaff(roleID uint) bool { return HasRole(roleID, RoleAdmin, RoleOfficer) }

// Identity is the authenticated caller as seen by use cases.
type Identity struct {
	UserID    uint64
	Username  string
	RoleID    uint
	VisitorID *uint64
	IP        string
}
