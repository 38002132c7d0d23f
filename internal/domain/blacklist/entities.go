package blacklist

import (
	"errors"
	"time"
)

const DefaultReason = "No reason provided"

var (
	ErrNotFound           = errors.New("blacklist entry not found")
	ErrAlreadyBlacklisted = errors.New("visitor is already blacklisted")
)

// Entry bars a visitor from submitting visit requests. One per visitor.
type Entry struct {
	BlackID   uint64    `gorm:"column:black_id;primaryKey;autoIncrement"`
	PUCID     *uint64   `gorm:"column:pupc_id"`
	VisitorID uint64    `gorm:"column:visitor_id;not null;uniqueIndex:ux_blacklist_visitor"`
	Reason    string    `gorm:"column:reason;size:255"`
	AddedAt   time.Time `gorm:"column:added_at;autoCreateTime"`
}

func (Entry) TableName() string { return "blacklist" }

type View struct {
	BlackID          uint64    `gorm:"column:black_id"`
	PUCID            *uint64   `gorm:"column:pupc_id"`
	VisitorID        uint64    `gorm:"column:visitor_id"`
	Reason           string    `gorm:"column:reason"`
	AddedAt          time.Time `gorm:"column:added_at"`
	VisitorFirstName *string   `gorm:"column:visitor_first_name"`
	VisitorLastName  *string   `gorm:"column:visitor_last_name"`
	PUCFirstName     *string   `gorm:"column:puc_first_name"`
	PUCLastName      *string   `gorm:"column:puc_last_name"`
}

func (v View) VisitorName() string { return join(v.VisitorFirstName, v.VisitorLastName) }
func (v View) PUCName() string     { return join(v.PUCFirstName, v.PUCLastName) }

func join(first, last *string) string {
	if first == nil && last == nil {
		return ""
	}
	var f, l string
	if first != nil {
		f = *first
	}
	if last != nil {
		l = *last
	}
	return f + " " + l
}
