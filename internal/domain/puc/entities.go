package puc

import (
	"errors"
	"time"
)

const (
	StatusInCustody = "In Custody"
	StatusReleased  = "Released"
)

var (
	ErrNotFound     = errors.New("PUC not found")
	ErrNameRequired = errors.New("first_name and last_name are required")
)

// PUC is a person under custody.
type PUC struct {
	PUCID       uint64     `gorm:"column:pupc_id;primaryKey;autoIncrement"`
	FirstName   string     `gorm:"column:first_name;size:50;not null"`
	LastName    string     `gorm:"column:last_name;size:50;not null"`
	Gender      string     `gorm:"column:gender;size:20"`
	Age         *int       `gorm:"column:age"`
	ArrestDate  *time.Time `gorm:"column:arrest_date;type:date"`
	ReleaseDate *time.Time `gorm:"column:release_date;type:date"`
	Status      string     `gorm:"column:status;size:50;not null;default:'In Custody';index"`
	CategoryID  *uint64    `gorm:"column:category_id;index"`
	CrimeID     *uint64    `gorm:"column:crime_id;index"`
	MugshotPath string     `gorm:"column:mugshot_path;size:255"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (PUC) TableName() string { return "pupcs" }

func (p PUC) Name() string { return p.FirstName + " " + p.LastName }

type Category struct {
	CategoryID  uint64 `gorm:"column:category_id;primaryKey;autoIncrement"`
	Name        string `gorm:"column:name;size:100;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (Category) TableName() string { return "crimecategories" }

type CrimeType struct {
	CrimeID      uint64  `gorm:"column:crime_id;primaryKey;autoIncrement"`
	CategoryID   *uint64 `gorm:"column:category_id;index"`
	Name         string  `gorm:"column:name;size:100;not null"`
	LawReference string  `gorm:"column:law_reference;size:100"`
	Description  string  `gorm:"column:description;type:text"`
}

func (CrimeType) TableName() string { return "crimetypes" }

// View is a PUC joined with its category and crime names.
type View struct {
	PUCID        uint64     `gorm:"column:pupc_id"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Gender       string     `gorm:"column:gender"`
	Age          *int       `gorm:"column:age"`
	ArrestDate   *time.Time `gorm:"column:arrest_date"`
	ReleaseDate  *time.Time `gorm:"column:release_date"`
	Status       string     `gorm:"column:status"`
	CategoryID   *uint64    `gorm:"column:category_id"`
	CrimeID      *uint64    `gorm:"column:crime_id"`
	MugshotPath  string     `gorm:"column:mugshot_path"`
	CategoryName *string    `gorm:"column:category_name"`
	CrimeName    *string    `gorm:"column:crime_name"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (v View) Name() string { return v.FirstName + " " + v.LastName }
