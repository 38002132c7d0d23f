package visit

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal states cannot be decided again.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

var (
	ErrNotFound           = errors.New("visit request not found")
	ErrAlreadyDecided     = errors.New("visit request already decided")
	ErrInvalidDecision    = errors.New("decision must be Approved or Rejected")
	ErrVisitorBlacklisted = errors.New("visitor is blacklisted")
	ErrNoLinkedVisitor    = errors.New("no visitor profile linked to this account")
)

// Log is one visit request. Only the approval fields change after insert.
type Log struct {
	VisitorLogID   uint64     `gorm:"column:visitor_log_id;primaryKey;autoIncrement"`
	PUCID          uint64     `gorm:"column:pupc_id;not null;index"`
	VisitorID      uint64     `gorm:"column:visitor_id;not null;index"`
	VisitDate      time.Time  `gorm:"column:visit_date;type:date;not null"`
	VisitTime      string     `gorm:"column:visit_time;size:5;not null"`
	Purpose        string     `gorm:"column:purpose;size:255;not null"`
	PhotoPath      string     `gorm:"column:photo_path;size:255"`
	ApprovalStatus Status     `gorm:"column:approval_status;size:20;not null;default:'Pending';index"`
	ApprovedBy     *uint64    `gorm:"column:approved_by"`
	ApprovalDate   *time.Time `gorm:"column:approval_date"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Log) TableName() string { return "visitorlogs" }

// View is a visit joined with visitor, PUC and approver names.
type View struct {
	VisitorLogID     uint64     `gorm:"column:visitor_log_id"`
	PUCID            uint64     `gorm:"column:pupc_id"`
	VisitorID        uint64     `gorm:"column:visitor_id"`
	VisitDate        time.Time  `gorm:"column:visit_date"`
	VisitTime        string     `gorm:"column:visit_time"`
	Purpose          string     `gorm:"column:purpose"`
	ApprovalStatus   Status     `gorm:"column:approval_status"`
	ApprovedBy       *uint64    `gorm:"column:approved_by"`
	ApprovalDate     *time.Time `gorm:"column:approval_date"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	VisitorFirstName *string    `gorm:"column:visitor_first_name"`
	VisitorLastName  *string    `gorm:"column:visitor_last_name"`
	Relationship     *string    `gorm:"column:relationship"`
	PUCFirstName     *string    `gorm:"column:puc_first_name"`
	PUCLastName      *string    `gorm:"column:puc_last_name"`
	ApproverUsername *string    `gorm:"column:approver_username"`
}

func (v View) VisitorName() string { return joinName(v.VisitorFirstName, v.VisitorLastName) }
func (v View) PUCName() string     { return joinName(v.PUCFirstName, v.PUCLastName) }

func joinName(first, last *string) string {
	var f, l string
	if first != nil {
		f = *first
	}
	if last != nil {
		l = *last
	}
	if f == "" && l == "" {
		return ""
	}
	return f + " " + l
}

// Filter narrows a listing; zero values match everything.
type Filter struct {
	VisitorID *uint64
	Status    Status
}

var (
	ErrInvalidTime   = errors.New("visit_time must be HH:MM")
	ErrInvalidStatus = errors.New("status must be Pending, Approved or Rejected")
)
