package mysql

import (
	"testing"
	"time"

	"themis-backend/internal/domain/puc"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

func day(offset int) time.Time {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, offset)
}

func seedPUC(t *testing.T, db *gorm.DB, first, last, status string, released *time.Time) *puc.PUC {
	t.Helper()
	p := &puc.PUC{FirstName: first, LastName: last, Status: status, ReleaseDate: released}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed puc: %v", err)
	}
	return p
}

func seedVisitor(t *testing.T, db *gorm.DB, first, last string) *visitor.Visitor {
	t.Helper()
	v := &visitor.Visitor{FirstName: first, LastName: last, RelationshipToPUC: "Sibling"}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed visitor: %v", err)
	}
	return v
}

func seedVisit(t *testing.T, db *gorm.DB, pucID, visitorID uint64, status visit.Status) *visit.Log {
	t.Helper()
	l := &visit.Log{
		PUCID:          pucID,
		VisitorID:      visitorID,
		VisitDate:      day(1),
		VisitTime:      "10:30",
		Purpose:        "family visit",
		ApprovalStatus: status,
	}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed visit: %v", err)
	}
	return l
}
