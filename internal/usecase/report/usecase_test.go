package report

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	domain "themis-backend/internal/domain/report"
	"themis-backend/internal/testutil/reportmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2025, 5, 20, 14, 30, 5, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }
func sp(s string) *string       { return &s }

func newUsecase(repo *reportmock.Repo) *Usecase {
	uc := NewUsecase(repo)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestResolveRange(t *testing.T) {
	start := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	r, err := ResolveRange("today", fixedNow)
	require.NoError(t, err)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
	assert.True(t, r.From.Equal(start))
	assert.True(t, r.To.Equal(start.AddDate(0, 0, 1)))

	r, err = ResolveRange("week", fixedNow)
	require.NoError(t, err)
	assert.True(t, r.From.Equal(start.AddDate(0, 0, -7)))
	assert.Nil(t, r.To)

	r, err = ResolveRange("month", fixedNow)
	require.NoError(t, err)
	assert.True(t, r.From.Equal(start.AddDate(0, 0, -30)))

	for _, all := range []string{"", "all"} {
		r, err = ResolveRange(all, fixedNow)
		require.NoError(t, err)
		assert.Nil(t, r.From)
		assert.Nil(t, r.To)
	}

	_, err = ResolveRange("year", fixedNow)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestExport_PUCText(t *testing.T) {
	var got domain.PUCFilter
	repo := &reportmock.Repo{
		PUCRowsFn: func(ctx context.Context, f domain.PUCFilter) ([]domain.PUCRow, error) {
			got = f
			return []domain.PUCRow{
				{FirstName: "Ray", LastName: "Doe", CrimeName: sp("Theft"), Status: "Released",
					ArrestDate: tp(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)), ReleaseDate: tp(time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC))},
				{FirstName: "Al", LastName: "Moe", Status: "In Custody"},
			}, nil
		},
	}
	uc := newUsecase(repo)

	f, err := uc.Export(context.Background(), KindPUC, "txt", Query{Status: "Released", DateRange: "month", Category: "Property"})
	require.NoError(t, err)

	assert.Equal(t, domain.DateReleased, got.Field)
	assert.Equal(t, "Property", got.Category)
	require.NotNil(t, got.Range.From)

	assert.Equal(t, "PUC_Report_20250520_143005.txt", f.Name)
	assert.Contains(t, f.ContentType, "text/plain")

	lines := strings.Split(strings.TrimRight(string(f.Data), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "PUC Report", lines[0])
	assert.Equal(t, "Generated on: 2025-05-20 14:30:05", lines[1])
	assert.Equal(t, "Name\tCrime\tStatus\tArrest Date\tRelease Date\tDays", lines[3])
	assert.Equal(t, "Ray Doe\tTheft\tReleased\t2025-05-01\t2025-05-11\t10", lines[4])
	assert.Equal(t, "Al Moe\tN/A\tIn Custody\tN/A\tN/A\tCurrent", lines[5])
}

func TestExport_PUCFilterUsesCreatedAtUnlessReleased(t *testing.T) {
	var got domain.PUCFilter
	repo := &reportmock.Repo{
		PUCRowsFn: func(ctx context.Context, f domain.PUCFilter) ([]domain.PUCRow, error) {
			got = f
			return nil, nil
		},
	}
	_, err := newUsecase(repo).Export(context.Background(), KindPUC, "txt", Query{Status: "In Custody", DateRange: "week"})
	require.NoError(t, err)
	assert.Equal(t, domain.DateCreated, got.Field)
}

func TestExport_VisitorXLSX(t *testing.T) {
	repo := &reportmock.Repo{
		VisitRowsFn: func(ctx context.Context, f domain.VisitFilter) ([]domain.VisitRow, error) {
			assert.Equal(t, "Approved", f.Status)
			return []domain.VisitRow{{
				VisitorFirstName: sp("Jane"), VisitorLastName: sp("Doe"),
				PUCFirstName: sp("Ray"), PUCLastName: sp("Doe"),
				VisitDate: time.Date(2025, 5, 19, 0, 0, 0, 0, time.UTC), VisitTime: "10:00",
				Status: "Approved", Purpose: "Family", Relationship: sp("Sister"),
			}}, nil
		},
	}
	f, err := newUsecase(repo).Export(context.Background(), KindVisitor, "xlsx", Query{Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, "Visitor_Report_20250520_143005.xlsx", f.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(f.Data))
	require.NoError(t, err)
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	rows, err := wb.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Visitor Report", rows[0][0])
	assert.Equal(t, []string{"Visitor Name", "PUC Name", "Visit Date", "Status", "Purpose", "Relationship"}, rows[3])
	assert.Equal(t, []string{"Jane Doe", "Ray Doe", "2025-05-19 10:00", "Approved", "Family", "Sister"}, rows[4])
}

func TestExport_AnalyticsPDF(t *testing.T) {
	var limits []int
	repo := &reportmock.Repo{
		PUCStatusCountsFn: func(ctx context.Context) ([]domain.StatusCount, error) {
			return []domain.StatusCount{{Status: "In Custody", Count: 3}}, nil
		},
		RecentlyReleasedFn: func(ctx context.Context, limit int) ([]domain.PUCRow, error) {
			limits = append(limits, limit)
			return nil, nil
		},
		RecentlyAddedFn: func(ctx context.Context, limit int) ([]domain.PUCRow, error) {
			limits = append(limits, limit)
			return []domain.PUCRow{{FirstName: "Zoë", LastName: "Ünal", Status: "In Custody", CreatedAt: fixedNow}}, nil
		},
	}
	f, err := newUsecase(repo).Export(context.Background(), KindAnalytics, "PDF", Query{})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 10}, limits)
	assert.Equal(t, "application/pdf", f.ContentType)
	assert.True(t, bytes.HasPrefix(f.Data, []byte("%PDF-")), "not a pdf")
	assert.Regexp(t, regexp.MustCompile(`^Analytics_Report_\d{8}_\d{6}\.pdf$`), f.Name)
}

func TestExport_AnalyticsSections(t *testing.T) {
	uc := newUsecase(&reportmock.Repo{})
	doc, err := uc.analyticsDocument(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Sections, 4)
	assert.Equal(t, "PUC Status Distribution", doc.Sections[0].Heading)
	assert.Equal(t, "Recently Added PUCs", doc.Sections[3].Heading)
}

func TestExport_Errors(t *testing.T) {
	uc := newUsecase(&reportmock.Repo{})
	ctx := context.Background()

	_, err := uc.Export(ctx, KindPUC, "docx", Query{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = uc.Export(ctx, "inmates", "pdf", Query{})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = uc.Export(ctx, KindVisitor, "txt", Query{DateRange: "decade"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestDaysHeld(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "30", daysHeld(&a, &r))
	assert.Equal(t, "Current", daysHeld(&a, nil))
	assert.Equal(t, "N/A", daysHeld(nil, &r))
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	assert.Equal(t, "Crime Categories", sheetName("Crime Categories", "x", used))
	assert.Equal(t, "Crime Categories 2", sheetName("Crime Categories", "x", used))
	long := sheetName("", strings.Repeat("a", 40), used)
	assert.Len(t, []rune(long), maxSheetName)
	assert.Equal(t, "a b", sheetName("a/b", "", used))
}
