package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"themis-backend/internal/domain/puc"
	domain "themis-backend/internal/domain/report"
)

const analyticsTopN = 10

// Kinds served by Export.
const (
	KindPUC       = "puc"
	KindVisitor   = "visitor"
	KindAnalytics = "analytics"
)

var kindTitles = map[string]string{
	KindPUC:       "PUC",
	KindVisitor:   "Visitor",
	KindAnalytics: "Analytics",
}

type Query struct {
	Status    string
	Category  string
	DateRange string // today | week | month | all
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Usecase struct {
	repo domain.Repository
	now  func() time.Time
}

func NewUsecase(repo domain.Repository) *Usecase {
	return &Usecase{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Export builds the kind report and renders it as format.
func (u *Usecase) Export(ctx context.Context, kind, format string, q Query) (*File, error) {
	r, err := rendererFor(strings.ToLower(format))
	if err != nil {
		return nil, err
	}
	title, ok := kindTitles[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	now := u.now()
	rng, err := ResolveRange(q.DateRange, now)
	if err != nil {
		return nil, err
	}

	var doc *Document
	switch kind {
	case KindPUC:
		doc, err = u.pucDocument(ctx, q, rng)
	case KindVisitor:
		doc, err = u.visitorDocument(ctx, q, rng)
	case KindAnalytics:
		doc, err = u.analyticsDocument(ctx)
	}
	if err != nil {
		return nil, err
	}
	doc.GeneratedAt = now

	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render %s report: %w", kind, err)
	}
	return &File{
		Name:        fmt.Sprintf("%s_Report_%s.%s", title, now.Format("20060102_150405"), r.Extension()),
		ContentType: r.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// ResolveRange maps a dateRange name to a window anchored at the start of now's UTC day.
func ResolveRange(name string, now time.Time) (domain.Range, error) {
	n := now.UTC()
	start := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	switch name {
	case "", "all":
		return domain.Range{}, nil
	case "today":
		end := start.AddDate(0, 0, 1)
		return domain.Range{From: &start, To: &end}, nil
	case "week":
		from := start.AddDate(0, 0, -7)
		return domain.Range{From: &from}, nil
	case "month":
		from := start.AddDate(0, 0, -30)
		return domain.Range{From: &from}, nil
	}
	return domain.Range{}, domain.ErrInvalidDateRange
}

func (u *Usecase) pucDocument(ctx context.Context, q Query, rng domain.Range) (*Document, error) {
	f := domain.PUCFilter{Status: q.Status, Category: q.Category, Range: rng}
	if q.Status == puc.StatusReleased {
		f.Field = domain.DateReleased
	}
	rows, err := u.repo.PUCRows(ctx, f)
	if err != nil {
		return nil, err
	}

	s := Section{
		Columns: []string{"Name", "Crime", "Status", "Arrest Date", "Release Date", "Days"},
		Widths:  []float64{4, 4, 2, 2, 2, 1},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		s.Rows = append(s.Rows, []string{
			r.Name(), deref(r.CrimeName), r.Status, day(r.ArrestDate), day(r.ReleaseDate), daysHeld(r.ArrestDate, r.ReleaseDate),
		})
	}
	return &Document{Title: "PUC Report", Sections: []Section{s}}, nil
}

func (u *Usecase) visitorDocument(ctx context.Context, q Query, rng domain.Range) (*Document, error) {
	rows, err := u.repo.VisitRows(ctx, domain.VisitFilter{Status: q.Status, Range: rng})
	if err != nil {
		return nil, err
	}
	s := Section{
		Columns: []string{"Visitor Name", "PUC Name", "Visit Date", "Status", "Purpose", "Relationship"},
		Widths:  []float64{3, 3, 3, 2, 4, 2},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		when := r.VisitDate.Format("2006-01-02")
		if r.VisitTime != "" {
			when += " " + r.VisitTime
		}
		s.Rows = append(s.Rows, []string{
			fullName(r.VisitorFirstName, r.VisitorLastName), fullName(r.PUCFirstName, r.PUCLastName), when, r.Status, r.Purpose, deref(r.Relationship),
		})
	}
	return &Document{Title: "Visitor Report", Sections: []Section{s}}, nil
}

func (u *Usecase) analyticsDocument(ctx context.Context) (*Document, error) {
	statuses, err := u.repo.PUCStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := u.repo.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}
	released, err := u.repo.RecentlyReleased(ctx, analyticsTopN)
	if err != nil {
		return nil, err
	}
	recent, err := u.repo.RecentlyAdded(ctx, analyticsTopN)
	if err != nil {
		return nil, err
	}

	statusSec := Section{Heading: "PUC Status Distribution", Columns: []string{"Status", "Count"}, Widths: []float64{3, 1}}
	for _, s := range statuses {
		statusSec.Rows = append(statusSec.Rows, []string{s.Status, strconv.FormatInt(s.Count, 10)})
	}
	categorySec := Section{Heading: "Crime Categories", Columns: []string{"Category", "Count"}, Widths: []float64{3, 1}}
	for _, c := range categories {
		categorySec.Rows = append(categorySec.Rows, []string{c.Name, strconv.FormatInt(c.Count, 10)})
	}
	releasedSec := Section{
		Heading: "Recently Released PUCs",
		Columns: []string{"Name", "Crime", "Arrest Date", "Release Date", "Days"},
		Widths:  []float64{4, 4, 2, 2, 1},
	}
	for _, r := range released {
		releasedSec.Rows = append(releasedSec.Rows, []string{r.Name(), deref(r.CrimeName), day(r.ArrestDate), day(r.ReleaseDate), daysHeld(r.ArrestDate, r.ReleaseDate)})
	}
	recentSec := Section{
		Heading: "Recently Added PUCs",
		Columns: []string{"Name", "Crime", "Status", "Date Added"},
		Widths:  []float64{4, 4, 2, 3},
	}
	for _, r := range recent {
		recentSec.Rows = append(recentSec.Rows, []string{r.Name(), deref(r.CrimeName), r.Status, stamp(r.CreatedAt)})
	}

	return &Document{Title: "Analytics Report", Sections: []Section{statusSec, categorySec, releasedSec, recentSec}}, nil
}

// daysHeld is release minus arrest in whole days, "Current" while not released.
func daysHeld(arrest, release *time.Time) string {
	if release == nil {
		return "Current"
	}
	if arrest == nil {
		return "N/A"
	}
	return strconv.Itoa(int(release.Sub(*arrest).Hours() / 24))
}

func day(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func deref(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}

func fullName(first, last *string) string {
	if first == nil && last == nil {
		return "N/A"
	}
	var f, l string
	if first != nil {
		f = *first
	}
	if last != nil {
		l = *last
	}
	return strings.TrimSpace(f + " " + l)
}
