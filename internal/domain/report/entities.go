package report

import (
	"errors"
	"time"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrUnknownKind       = errors.New("unknown report type")
	ErrInvalidDateRange  = errors.New("dateRange must be one of today, week, month, all")
)

// DateField picks the PUC column a date range applies to.
type DateField int

const (
	DateCreated DateField = iota
	DateReleased
)

// Range is a half-open [From, To) window; nil bounds are open.
type Range struct {
	From *time.Time
	To   *time.Time
}

type PUCFilter struct {
	Status   string
	Category string // category name, exact
	Field    DateField
	Range    Range
}

type VisitFilter struct {
	Status string
	Range  Range // on visit_date
}

type PUCRow struct {
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	CrimeName    *string    `gorm:"column:crime_name"`
	CategoryName *string    `gorm:"column:category_name"`
	Status       string     `gorm:"column:status"`
	ArrestDate   *time.Time `gorm:"column:arrest_date"`
	ReleaseDate  *time.Time `gorm:"column:release_date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (r PUCRow) Name() string { return r.FirstName + " " + r.LastName }

type VisitRow struct {
	VisitorFirstName *string   `gorm:"column:visitor_first_name"`
	VisitorLastName  *string   `gorm:"column:visitor_last_name"`
	PUCFirstName     *string   `gorm:"column:puc_first_name"`
	PUCLastName      *string   `gorm:"column:puc_last_name"`
	VisitDate        time.Time `gorm:"column:visit_date"`
	VisitTime        string    `gorm:"column:visit_time"`
	Status           string    `gorm:"column:approval_status"`
	Purpose          string    `gorm:"column:purpose"`
	Relationship     *string   `gorm:"column:relationship"`
}

type StatusCount struct {
	Status string `gorm:"column:status" json:"status"`
	Count  int64  `gorm:"column:count" json:"count"`
}

type NameCount struct {
	Name  string `gorm:"column:name" json:"name"`
	Count int64  `gorm:"column:count" json:"count"`
}

// Counts feeds the dashboards.
type Counts struct {
	Users         int64
	PUCs          int64
	Visitors      int64
	VisitorLogs   int64
	PendingVisits int64
	Blacklisted   int64
	TodayVisits   int64
}
