package mysql

import (
	"context"
	"time"

	"themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/puc"
	reportDomain "themis-backend/internal/domain/report"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/domain/visitor"

	"gorm.io/gorm"
)

const pucRowColumns = "p.first_name, p.last_name, ct.name AS crime_name, cc.name AS category_name, " +
	"p.status, p.arrest_date, p.release_date, p.created_at"

// ReportRepository serves the read-only report and dashboard queries.
type ReportRepository struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) pucRows(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pupcs p").
		Select(pucRowColumns).
		Joins("LEFT JOIN crimetypes ct ON ct.crime_id = p.crime_id").
		Joins("LEFT JOIN crimecategories cc ON cc.category_id = p.category_id")
}

func applyRange(q *gorm.DB, col string, rg reportDomain.Range) *gorm.DB {
	if rg.From != nil {
		q = q.Where(col+" >= ?", rg.From.UTC())
	}
	if rg.To != nil {
		q = q.Where(col+" < ?", rg.To.UTC())
	}
	return q
}

func (r *ReportRepository) PUCRows(ctx context.Context, f reportDomain.PUCFilter) ([]reportDomain.PUCRow, error) {
	q := r.pucRows(ctx)
	if f.Status != "" {
		q = q.Where("p.status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("cc.name = ?", f.Category)
	}
	col := "p.created_at"
	if f.Field == reportDomain.DateReleased {
		col = "p.release_date"
	}
	q = applyRange(q, col, f.Range)

	var out []reportDomain.PUCRow
	err := q.Order("p.last_name, p.first_name").Scan(&out).Error
	return out, err
}

func (r *ReportRepository) VisitRows(ctx context.Context, f reportDomain.VisitFilter) ([]reportDomain.VisitRow, error) {
	q := r.db.WithContext(ctx).
		Table("visitorlogs vl").
		Select("v.first_name AS visitor_first_name, v.last_name AS visitor_last_name, " +
			"p.first_name AS puc_first_name, p.last_name AS puc_last_name, " +
			"vl.visit_date, vl.visit_time, vl.approval_status, vl.purpose, v.relationship_to_puc AS relationship").
		Joins("LEFT JOIN visitors v ON v.visitor_id = vl.visitor_id").
		Joins("LEFT JOIN pupcs p ON p.pupc_id = vl.pupc_id")
	if f.Status != "" {
		q = q.Where("vl.approval_status = ?", f.Status)
	}
	q = applyRange(q, "vl.visit_date", f.Range)

	var out []reportDomain.VisitRow
	err := q.Order("vl.visit_date DESC, vl.visit_time DESC").Scan(&out).Error
	return out, err
}

func (r *ReportRepository) PUCStatusCounts(ctx context.Context) ([]reportDomain.StatusCount, error) {
	var out []reportDomain.StatusCount
	err := r.db.WithContext(ctx).
		Table("pupcs").
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

func (r *ReportRepository) CategoryCounts(ctx context.Context) ([]reportDomain.NameCount, error) {
	var out []reportDomain.NameCount
	err := r.db.WithContext(ctx).
		Table("pupcs p").
		Select("cc.name AS name, COUNT(*) AS count").
		Joins("JOIN crimecategories cc ON cc.category_id = p.category_id").
		Group("cc.name").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

func (r *ReportRepository) RecentlyReleased(ctx context.Context, limit int) ([]reportDomain.PUCRow, error) {
	var out []reportDomain.PUCRow
	err := r.pucRows(ctx).
		Where("p.release_date IS NOT NULL").
		Order("p.release_date DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *ReportRepository) RecentlyAdded(ctx context.Context, limit int) ([]reportDomain.PUCRow, error) {
	var out []reportDomain.PUCRow
	err := r.pucRows(ctx).
		Order("p.created_at DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *ReportRepository) Counts(ctx context.Context, today time.Time) (*reportDomain.Counts, error) {
	db := r.db.WithContext(ctx)
	var c reportDomain.Counts
	steps := []struct {
		model any
		where string
		args  []any
		dst   *int64
	}{
		{model: &user.User{}, dst: &c.Users},
		{model: &puc.PUC{}, dst: &c.PUCs},
		{model: &visitor.Visitor{}, dst: &c.Visitors},
		{model: &visit.Log{}, dst: &c.VisitorLogs},
		{model: &visit.Log{}, where: "approval_status = ?", args: []any{visit.StatusPending}, dst: &c.PendingVisits},
		{model: &blacklist.Entry{}, dst: &c.Blacklisted},
		{model: &visit.Log{}, where: "visit_date >= ? AND visit_date < ?", args: []any{today.UTC(), today.UTC().Add(24 * time.Hour)}, dst: &c.TodayVisits},
	}
	for _, s := range steps {
		q := db.Model(s.model)
		if s.where != "" {
			q = q.Where(s.where, s.args...)
		}
		if err := q.Count(s.dst).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *ReportRepository) UsersByRole(ctx context.Context) ([]reportDomain.NameCount, error) {
	var out []reportDomain.NameCount
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("r.name AS name, COUNT(u.user_id) AS count").
		Joins("JOIN roles r ON r.role_id = u.role_id").
		Group("r.name").
		Scan(&out).Error
	return out, err
}
