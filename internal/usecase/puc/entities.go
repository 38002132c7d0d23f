package puc

import (
	"time"

	domain "themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/visitor"
	"themis-backend/internal/usecase/provisioning"
)

const dateLayout = "2006-01-02"

// VisitorInput is an approved visitor supplied with a PUC create or update.
// Entries with ApprovalID set already exist and are skipped.
type VisitorInput struct {
	ApprovalID   *uint64
	FirstName    string
	LastName     string
	Relationship string
	Email        string
	Phone        string
}

type CreateInput struct {
	FirstName        string
	LastName         string
	Gender           string
	Age              *int
	ArrestDate       *time.Time
	ReleaseDate      *time.Time
	Status           string
	CategoryID       *uint64
	CrimeID          *uint64
	MugshotPath      string
	ApprovedVisitors []VisitorInput
}

// UpdateInput: nil fields are left unchanged.
type UpdateInput struct {
	FirstName        *string
	LastName         *string
	Gender           *string
	Age              *int
	ArrestDate       *time.Time
	ReleaseDate      *time.Time
	Status           *string
	CategoryID       *uint64
	CrimeID          *uint64
	MugshotPath      *string
	ApprovedVisitors []VisitorInput
}

type PUCDTO struct {
	PUCID        uint64    `json:"pupc_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       string    `json:"gender"`
	Age          *int      `json:"age"`
	ArrestDate   *string   `json:"arrest_date"`
	ReleaseDate  *string   `json:"release_date"`
	Status       string    `json:"status"`
	CategoryID   *uint64   `json:"category_id"`
	CategoryName *string   `json:"category_name"`
	CrimeID      *uint64   `json:"crime_id"`
	CrimeName    *string   `json:"crime_name"`
	MugshotPath  string    `json:"mugshot_path"`
	CreatedAt    time.Time `json:"created_at"`
}

type ApprovedVisitorDTO struct {
	ApprovalID     uint64    `json:"approval_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Relationship   string    `json:"relationship"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	VisitorID      *uint64   `json:"visitor_id"`
	UserID         *uint64   `json:"user_id"`
	Username       string    `json:"username"`
	AccountCreated bool      `json:"account_created"`
	CreatedAt      time.Time `json:"created_at"`
}

type DetailDTO struct {
	PUCDTO
	ApprovedVisitors []ApprovedVisitorDTO `json:"approved_visitors"`
}

// SaveResult lists credentials for visitors provisioned by the call.
type SaveResult struct {
	PUC         PUCDTO                `json:"puc"`
	Provisioned []provisioning.Result `json:"provisioned_visitors"`
}

type CategoryDTO struct {
	CategoryID  uint64 `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CrimeTypeDTO struct {
	CrimeID      uint64  `json:"crime_id"`
	CategoryID   *uint64 `json:"category_id"`
	Name         string  `json:"name"`
	LawReference string  `json:"law_reference"`
	Description  string  `json:"description"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func fromView(v domain.View) PUCDTO {
	return PUCDTO{
		PUCID:        v.PUCID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Gender:       v.Gender,
		Age:          v.Age,
		ArrestDate:   formatDate(v.ArrestDate),
		ReleaseDate:  formatDate(v.ReleaseDate),
		Status:       v.Status,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		CrimeID:      v.CrimeID,
		CrimeName:    v.CrimeName,
		MugshotPath:  v.MugshotPath,
		CreatedAt:    v.CreatedAt,
	}
}

func fromPUC(p *domain.PUC) PUCDTO {
	return PUCDTO{
		PUCID:       p.PUCID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Gender:      p.Gender,
		Age:         p.Age,
		ArrestDate:  formatDate(p.ArrestDate),
		ReleaseDate: formatDate(p.ReleaseDate),
		Status:      p.Status,
		CategoryID:  p.CategoryID,
		CrimeID:     p.CrimeID,
		MugshotPath: p.MugshotPath,
		CreatedAt:   p.CreatedAt,
	}
}

func fromApproved(a visitor.ApprovedVisitor) ApprovedVisitorDTO {
	return ApprovedVisitorDTO{
		ApprovalID:     a.ApprovalID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Relationship:   a.Relationship,
		Email:          a.Email,
		Phone:          a.Phone,
		VisitorID:      a.VisitorID,
		UserID:         a.UserID,
		Username:       a.Username,
		AccountCreated: a.AccountCreated,
		CreatedAt:      a.CreatedAt,
	}
}
