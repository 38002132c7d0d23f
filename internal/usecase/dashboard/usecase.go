package dashboard

import (
	"context"
	"time"

	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/report"
)

const statusChangeLimit = 5

type GlobalStats struct {
	UserCount            int64  `json:"user_count"`
	PUCCount             int64  `json:"pupc_count"`
	VisitorLogCount      int64  `json:"visitor_log_count"`
	PendingApprovalCount int64  `json:"pending_approval_count"`
	BlacklistedCount     int64  `json:"blacklisted_count"`
	SystemStatus         string `json:"system_status"`
}

type RoleStats struct {
	PUCsCount     int64            `json:"pucs_count"`
	VisitorsCount int64            `json:"visitors_count"`
	PendingCount  int64            `json:"pending_count"`
	TodayVisits   int64            `json:"today_visits"`
	UsersByRole   map[string]int64 `json:"users_by_role,omitempty"`
}

type PUCSummary struct {
	Name        string  `json:"name"`
	Crime       *string `json:"crime"`
	Status      string  `json:"status"`
	ArrestDate  *string `json:"arrest_date"`
	ReleaseDate *string `json:"release_date"`
	CreatedAt   string  `json:"created_at"`
}

type StatusChanges struct {
	StatusCounts   []report.StatusCount `json:"status_counts"`
	CategoryCounts []report.NameCount   `json:"category_counts"`
	ReleasedPUCs   []PUCSummary         `json:"released_pucs"`
	RecentPUCs     []PUCSummary         `json:"recent_pucs"`
}

type AuditDTO struct {
	AuditID   uint64    `json:"audit_id"`
	UserID    *uint64   `json:"user_id"`
	Username  *string   `json:"username"`
	EventType string    `json:"event_type"`
	EventTime time.Time `json:"event_time"`
	IPAddress string    `json:"ip_address"`
	Notes     string    `json:"notes"`
}

type Usecase struct {
	reports report.Repository
	audits  audit.Repository
	now     func() time.Time
}

func NewUsecase(reports report.Repository, audits audit.Repository) *Usecase {
	return &Usecase{reports: reports, audits: audits, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) today() time.Time {
	n := u.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (u *Usecase) Global(ctx context.Context) (*GlobalStats, error) {
	c, err := u.reports.Counts(ctx, u.today())
	if err != nil {
		return nil, err
	}
	return &GlobalStats{
		UserCount:            c.Users,
		PUCCount:             c.PUCs,
		VisitorLogCount:      c.VisitorLogs,
		PendingApprovalCount: c.PendingVisits,
		BlacklistedCount:     c.Blacklisted,
		SystemStatus:         "Online",
	}, nil
}

func (u *Usecase) Officer(ctx context.Context) (*RoleStats, error) {
	c, err := u.reports.Counts(ctx, u.today())
	if err != nil {
		return nil, err
	}
	return &RoleStats{PUCsCount: c.PUCs, VisitorsCount: c.Visitors, PendingCount: c.PendingVisits, TodayVisits: c.TodayVisits}, nil
}

// Admin is Officer plus a user count per role.
func (u *Usecase) Admin(ctx context.Context) (*RoleStats, error) {
	s, err := u.Officer(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := u.reports.UsersByRole(ctx)
	if err != nil {
		return nil, err
	}
	s.UsersByRole = make(map[string]int64, len(byRole))
	for _, r := range byRole {
		s.UsersByRole[r.Name] = r.Count
	}
	return s, nil
}

func (u *Usecase) StatusChanges(ctx context.Context) (*StatusChanges, error) {
	statuses, err := u.reports.PUCStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := u.reports.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	released, err := u.reports.RecentlyReleased(ctx, statusChangeLimit)
	if err != nil {
		return nil, err
	}
	recent, err := u.reports.RecentlyAdded(ctx, statusChangeLimit)
	if err != nil {
		return nil, err
	}
	if statuses == nil {
		statuses = []report.StatusCount{}
	}
	if categories == nil {
		categories = []report.NameCount{}
	}
	return &StatusChanges{
		StatusCounts:   statuses,
		CategoryCounts: categories,
		ReleasedPUCs:   summarize(released),
		RecentPUCs:     summarize(recent),
	}, nil
}

func summarize(rows []report.PUCRow) []PUCSummary {
	out := make([]PUCSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, PUCSummary{
			Name:        r.Name(),
			Crime:       r.CrimeName,
			Status:      r.Status,
			ArrestDate:  date(r.ArrestDate),
			ReleaseDate: date(r.ReleaseDate),
			CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func date(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func (u *Usecase) AuditLogs(ctx context.Context, limit int) ([]AuditDTO, error) {
	rows, err := u.audits.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AuditDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, AuditDTO{
			AuditID:   r.AuditID,
			UserID:    r.UserID,
			Username:  r.Username,
			EventType: r.EventType,
			EventTime: r.EventTime,
			IPAddress: r.IPAddress,
			Notes:     r.Notes,
		})
	}
	return out, nil
}
