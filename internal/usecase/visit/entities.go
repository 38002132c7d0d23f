package visit

import (
	"time"

	domain "themis-backend/internal/domain/visit"
)

const dateLayout = "2006-01-02"

type SubmitInput struct {
	PUCID     uint64
	VisitorID *uint64 // defaults to the caller's visitor
	VisitDate time.Time
	VisitTime string // HH:MM
	Purpose   string
	PhotoPath string
}

type VisitDTO struct {
	VisitorLogID     uint64     `json:"visitor_log_id"`
	PUCID            uint64     `json:"pupc_id"`
	VisitorID        uint64     `json:"visitor_id"`
	VisitorName      string     `json:"visitor_name,omitempty"`
	PUCName          string     `json:"puc_name,omitempty"`
	Relationship     *string    `json:"relationship,omitempty"`
	VisitDate        string     `json:"visit_date"`
	VisitTime        string     `json:"visit_time"`
	Purpose          string     `json:"purpose"`
	ApprovalStatus   string     `json:"approval_status"`
	ApprovedBy       *uint64    `json:"approved_by"`
	ApproverUsername *string    `json:"approver_username,omitempty"`
	ApprovalDate     *time.Time `json:"approval_date"`
	CreatedAt        time.Time  `json:"created_at"`
}

func fromLog(l *domain.Log) *VisitDTO {
	return &VisitDTO{
		VisitorLogID:   l.VisitorLogID,
		PUCID:          l.PUCID,
		VisitorID:      l.VisitorID,
		VisitDate:      l.VisitDate.Format(dateLayout),
		VisitTime:      l.VisitTime,
		Purpose:        l.Purpose,
		ApprovalStatus: string(l.ApprovalStatus),
		ApprovedBy:     l.ApprovedBy,
		ApprovalDate:   l.ApprovalDate,
		CreatedAt:      l.CreatedAt,
	}
}

func fromView(v domain.View) VisitDTO {
	return VisitDTO{
		VisitorLogID:     v.VisitorLogID,
		PUCID:            v.PUCID,
		VisitorID:        v.VisitorID,
		VisitorName:      v.VisitorName(),
		PUCName:          v.PUCName(),
		Relationship:     v.Relationship,
		VisitDate:        v.VisitDate.Format(dateLayout),
		VisitTime:        v.VisitTime,
		Purpose:          v.Purpose,
		ApprovalStatus:   string(v.ApprovalStatus),
		ApprovedBy:       v.ApprovedBy,
		ApproverUsername: v.ApproverUsername,
		ApprovalDate:     v.ApprovalDate,
		CreatedAt:        v.CreatedAt,
	}
}
