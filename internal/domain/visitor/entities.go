package visitor

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("visitor not found")

type Visitor struct {
	VisitorID         uint64    `gorm:"column:visitor_id;primaryKey;autoIncrement"`
	FirstName         string    `gorm:"column:first_name;size:50;not null"`
	LastName          string    `gorm:"column:last_name;size:50;not null"`
	RelationshipToPUC string    `gorm:"column:relationship_to_puc;size:50"`
	PhotoPath         string    `gorm:"column:photo_path;size:255"`
	RegisteredAt      time.Time `gorm:"column:registered_at;autoCreateTime"`
}

func (Visitor) TableName() string { return "visitors" }

func (v Visitor) Name() string { return v.FirstName + " " + v.LastName }

// ApprovedVisitor links a provisioned visitor account to a PUC.
// Password keeps the generated credential so staff can hand it over.
type ApprovedVisitor struct {
	ApprovalID     uint64    `gorm:"column:approval_id;primaryKey;autoIncrement"`
	PUCID          uint64    `gorm:"column:pupc_id;not null;index"`
	FirstName      string    `gorm:"column:first_name;size:50;not null"`
	LastName       string    `gorm:"column:last_name;size:50;not null"`
	Relationship   string    `gorm:"column:relationship;size:50"`
	Email          string    `gorm:"column:email;size:100"`
	Phone          string    `gorm:"column:phone;size:20"`
	VisitorID      *uint64   `gorm:"column:visitor_id;index"`
	UserID         *uint64   `gorm:"column:user_id;index"`
	Username       string    `gorm:"column:username;size:50"`
	Password       string    `gorm:"column:password;size:20"`
	AccountCreated bool      `gorm:"column:account_created;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApprovedVisitor) TableName() string { return "approvedvisitors" }

// ApprovedView is an approved visitor joined with the PUC name.
type ApprovedView struct {
	ApprovedVisitor
	PUCFirstName string `gorm:"column:puc_first_name"`
	PUCLastName  string `gorm:"column:puc_last_name"`
}

func (v ApprovedView) PUCName() string { return v.PUCFirstName + " " + v.PUCLastName }
