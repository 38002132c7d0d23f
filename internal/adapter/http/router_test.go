package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"themis-backend/internal/adapter/repository/mysql"
	"themis-backend/internal/domain/audit"
	"themis-backend/internal/domain/blacklist"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/domain/visit"
	"themis-backend/internal/testutil/testdb"
	"themis-backend/internal/usecase/auth"
	blacklistUC "themis-backend/internal/usecase/blacklist"
	"themis-backend/internal/usecase/dashboard"
	"themis-backend/internal/usecase/provisioning"
	"themis-backend/internal/usecase/puc"
	"themis-backend/internal/usecase/report"
	userUC "themis-backend/internal/usecase/user"
	visitUC "themis-backend/internal/usecase/visit"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() { auth.HashCost = bcrypt.MinCost }

const (
	adminUser = "root"
	adminPass = "root-pass"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gdb := testdb.New(t)
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}

	users := mysql.NewUserRepository(gdb)
	visitors := mysql.NewVisitorRepository(gdb)
	pucs := mysql.NewPUCRepository(gdb)
	visits := mysql.NewVisitRepository(gdb)
	entries := mysql.NewBlacklistRepository(gdb)
	audits := mysql.NewAuditRepository(gdb)
	reports := mysql.NewReportRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	authUC := auth.NewUsecase(users, tx, auth.Config{Secret: []byte("test-secret"), TTL: time.Hour}, nil)
	if _, err := authUC.EnsureAdmin(context.Background(), adminUser, adminPass); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(nil)
	Register(e, Deps{
		DB:           sqlDB,
		Auth:         authUC,
		PUCs:         puc.NewUsecase(pucs, visitors, tx, nil),
		Provisioning: provisioning.NewUsecase(tx, nil),
		Visits:       visitUC.NewUsecase(visits, tx),
		Blacklist:    blacklistUC.NewUsecase(entries, tx),
		Users:        userUC.NewUsecase(users, visitors, tx),
		Dashboard:    dashboard.NewUsecase(reports, audits),
		Reports:      report.NewUsecase(reports),
	})
	return &testServer{e: e, db: gdb}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; raw=%s", v, err, rec.Body.String())
	}
	return v
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status=%d want %d body=%s", rec.Code, code, rec.Body.String())
	}
}

func (s *testServer) login(t *testing.T, username, password string) auth.Session {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	expect(t, rec, http.StatusOK)
	return decode[auth.Session](t, rec)
}

func (s *testServer) signup(t *testing.T, username, password string) auth.SignupResult {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{
		"username": username, "password": password, "first_name": "Jane", "last_name": "Roe",
	})
	expect(t, rec, http.StatusCreated)
	return decode[auth.SignupResult](t, rec)
}

// officer signs up a user and promotes it through the admin API.
func (s *testServer) officer(t *testing.T, admin string) auth.Session {
	t.Helper()
	res := s.signup(t, "officer1", "officer-pass")
	rec := s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", res.UserID), admin, map[string]uint{"role_id": user.RoleOfficer})
	expect(t, rec, http.StatusOK)
	return s.login(t, "officer1", "officer-pass")
}

func (s *testServer) createPUC(t *testing.T, token string, body map[string]any) puc.SaveResult {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/pucs", token, body)
	expect(t, rec, http.StatusCreated)
	return decode[puc.SaveResult](t, rec)
}

func (s *testServer) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	if err := s.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestRouter_HealthAndAuthGate(t *testing.T) {
	s := newTestServer(t)

	expect(t, s.do(t, http.MethodGet, "/health", "", nil), http.StatusOK)

	rec := s.do(t, http.MethodGet, "/api/profile", "", nil)
	expect(t, rec, http.StatusUnauthorized)
	if got := decode[ErrorResponse](t, rec).Error; got != "token is missing" {
		t.Fatalf("error=%q", got)
	}
	expect(t, s.do(t, http.MethodGet, "/api/profile", "not-a-jwt", nil), http.StatusUnauthorized)
}

func TestRouter_SignupThenLogin(t *testing.T) {
	s := newTestServer(t)

	res := s.signup(t, "visitor1", "secret1")
	if res.RoleID != user.RoleVisitor || res.VisitorID == 0 {
		t.Fatalf("signup result: %+v", res)
	}

	sess := s.login(t, "visitor1", "secret1")
	if sess.Token == "" || sess.UserID != res.UserID {
		t.Fatalf("session: %+v", sess)
	}

	rec := s.do(t, http.MethodGet, "/api/profile", sess.Token, nil)
	expect(t, rec, http.StatusOK)
	p := decode[auth.Profile](t, rec)
	if p.Username != "visitor1" || p.RoleName != "Visitor" || p.LastLogin == nil {
		t.Fatalf("profile: %+v", p)
	}

	rec = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "visitor1", "password": "wrong"})
	expect(t, rec, http.StatusUnauthorized)
	rec = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "ghost", "password": "whatever"})
	expect(t, rec, http.StatusUnauthorized)
}

func TestRouter_DuplicateSignup(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "visitor1", "secret1")
	before := s.count(t, &user.User{})

	rec := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{"username": "visitor1", "password": "other-pass"})
	expect(t, rec, http.StatusConflict)
	if after := s.count(t, &user.User{}); after != before {
		t.Fatalf("users %d -> %d", before, after)
	}
}

func TestRouter_SignupValidation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/signup", "", map[string]string{"username": "ab", "password": "x"})
	expect(t, rec, http.StatusUnprocessableEntity)
	resp := decode[ErrorResponse](t, rec)
	if !containsFieldMsg(resp.Details, "username", "at least 3") || !containsFieldMsg(resp.Details, "password", "at least 6") {
		t.Fatalf("details: %+v", resp.Details)
	}
}

func TestRouter_ProvisioningUsernames(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminUser, adminPass).Token
	off := s.officer(t, admin).Token

	p := s.createPUC(t, off, map[string]any{"first_name": "Ray", "last_name": "Doe"})
	path := fmt.Sprintf("/api/pucs/%d/visitors", p.PUC.PUCID)

	rec := s.do(t, http.MethodPost, path, off, map[string]string{"first_name": "Jane", "last_name": "Doe", "relationship": "Sister"})
	expect(t, rec, http.StatusCreated)
	first := decode[provisioning.Result](t, rec)
	if first.Username != "jdoe" || len(first.Password) != 8 {
		t.Fatalf("first: %+v", first)
	}

	rec = s.do(t, http.MethodPost, path, off, map[string]string{"first_name": "John", "last_name": "Doe"})
	expect(t, rec, http.StatusCreated)
	if second := decode[provisioning.Result](t, rec); second.Username != "jdoe1" {
		t.Fatalf("second username=%q", second.Username)
	}

	// provisioned credentials work
	s.login(t, first.Username, first.Password)

	// visitors cannot provision
	vis := s.login(t, first.Username, first.Password).Token
	expect(t, s.do(t, http.MethodPost, path, vis, map[string]string{"first_name": "A", "last_name": "B"}), http.StatusForbidden)
}

func TestRouter_VisitLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminUser, adminPass).Token
	off := s.officer(t, admin)
	s.signup(t, "visitor1", "secret1")
	vis := s.login(t, "visitor1", "secret1").Token

	p := s.createPUC(t, off.Token, map[string]any{"first_name": "Ray", "last_name": "Doe"})

	rec := s.do(t, http.MethodPost, "/api/visit-requests", vis, map[string]any{
		"pupc_id": p.PUC.PUCID, "visit_date": "2025-06-01", "visit_time": "10:30", "purpose": "family visit",
	})
	expect(t, rec, http.StatusCreated)
	v := decode[visitUC.VisitDTO](t, rec)
	if v.ApprovalStatus != string(visit.StatusPending) {
		t.Fatalf("submitted: %+v", v)
	}

	rec = s.do(t, http.MethodPost, "/api/visit-requests", vis, map[string]any{
		"pupc_id": p.PUC.PUCID, "visit_date": "2025-06-01", "visit_time": "25:00", "purpose": "x",
	})
	expect(t, rec, http.StatusUnprocessableEntity)

	approve := fmt.Sprintf("/api/visitor-logs/%d/approve", v.VisitorLogID)

	// visitor deciding is refused and the row stays Pending
	expect(t, s.do(t, http.MethodPut, approve, vis, nil), http.StatusForbidden)
	var row visit.Log
	if err := s.db.First(&row, v.VisitorLogID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.ApprovalStatus != visit.StatusPending || row.ApprovedBy != nil {
		t.Fatalf("row changed: %+v", row)
	}

	audits := s.count(t, &audit.Log{})
	rec = s.do(t, http.MethodPut, approve, off.Token, nil)
	expect(t, rec, http.StatusOK)
	got := decode[visitUC.VisitDTO](t, rec)
	if got.ApprovalStatus != string(visit.StatusApproved) || got.ApprovedBy == nil || *got.ApprovedBy != off.UserID {
		t.Fatalf("decided: %+v", got)
	}
	if n := s.count(t, &audit.Log{}); n != audits+1 {
		t.Fatalf("audit rows %d -> %d", audits, n)
	}

	// terminal
	expect(t, s.do(t, http.MethodPut, fmt.Sprintf("/api/visitor-logs/%d/reject", v.VisitorLogID), off.Token, nil), http.StatusConflict)
	expect(t, s.do(t, http.MethodPut, "/api/visitor-logs/9999/approve", off.Token, nil), http.StatusNotFound)

	rec = s.do(t, http.MethodGet, "/api/my-visits?status=Approved", vis, nil)
	expect(t, rec, http.StatusOK)
	if mine := decode[[]visitUC.VisitDTO](t, rec); len(mine) != 1 {
		t.Fatalf("my visits: %+v", mine)
	}
	expect(t, s.do(t, http.MethodGet, "/api/visit-requests?status=Maybe", vis, nil), http.StatusBadRequest)
}

func TestRouter_BlacklistTwice(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminUser, adminPass).Token
	off := s.officer(t, admin).Token
	res := s.signup(t, "visitor1", "secret1")
	vis := s.login(t, "visitor1", "secret1").Token

	body := map[string]any{"visitor_id": res.VisitorID, "reason": "contraband"}
	rec := s.do(t, http.MethodPost, "/api/blacklist", off, body)
	expect(t, rec, http.StatusCreated)
	entry := decode[blacklistUC.EntryDTO](t, rec)

	rec = s.do(t, http.MethodPost, "/api/blacklist", off, body)
	expect(t, rec, http.StatusBadRequest)
	if msg := decode[ErrorResponse](t, rec).Error; !strings.Contains(msg, "already blacklisted") {
		t.Fatalf("error=%q", msg)
	}
	if n := s.count(t, &blacklist.Entry{}); n != 1 {
		t.Fatalf("blacklist rows=%d", n)
	}

	// blacklisted visitors cannot submit
	p := s.createPUC(t, off, map[string]any{"first_name": "Ray", "last_name": "Doe"})
	rec = s.do(t, http.MethodPost, "/api/visit-requests", vis, map[string]any{
		"pupc_id": p.PUC.PUCID, "visit_date": "2025-06-01", "visit_time": "09:00", "purpose": "family visit",
	})
	expect(t, rec, http.StatusForbidden)

	expect(t, s.do(t, http.MethodDelete, fmt.Sprintf("/api/blacklist/%d", entry.BlackID), off, nil), http.StatusOK)
	expect(t, s.do(t, http.MethodDelete, fmt.Sprintf("/api/blacklist/%d", entry.BlackID), off, nil), http.StatusNotFound)
}

func TestRouter_ExportReleasedMonth(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminUser, adminPass).Token

	today := time.Now().UTC()
	s.createPUC(t, admin, map[string]any{
		"first_name": "Recent", "last_name": "Release", "status": "Released",
		"release_date": today.AddDate(0, 0, -3).Format(dateLayout),
	})
	s.createPUC(t, admin, map[string]any{
		"first_name": "Old", "last_name": "Release", "status": "Released",
		"release_date": today.AddDate(0, 0, -60).Format(dateLayout),
	})
	s.createPUC(t, admin, map[string]any{"first_name": "Still", "last_name": "Held"})

	rec := s.do(t, http.MethodGet, "/api/export/puc/txt?status=Released&dateRange=month", admin, nil)
	expect(t, rec, http.StatusOK)
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "PUC_Report_") {
		t.Fatalf("content-disposition=%q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Recent Release") || strings.Contains(body, "Old Release") || strings.Contains(body, "Still Held") {
		t.Fatalf("report body:\n%s", body)
	}

	expect(t, s.do(t, http.MethodGet, "/api/export/puc/docx", admin, nil), http.StatusBadRequest)
}

func TestRouter_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminUser, adminPass)
	off := s.officer(t, admin.Token).Token

	expect(t, s.do(t, http.MethodGet, "/api/admin/users", off, nil), http.StatusForbidden)
	expect(t, s.do(t, http.MethodGet, "/api/officer/dashboard/stats", off, nil), http.StatusOK)

	rec := s.do(t, http.MethodGet, "/api/admin/users", admin.Token, nil)
	expect(t, rec, http.StatusOK)
	if list := decode[[]userUC.UserDTO](t, rec); len(list) != 2 {
		t.Fatalf("users: %+v", list)
	}

	expect(t, s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.UserID), admin.Token, nil), http.StatusBadRequest)
	expect(t, s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", admin.UserID), admin.Token, map[string]uint{"role_id": 9}), http.StatusUnprocessableEntity)

	rec = s.do(t, http.MethodGet, "/api/admin/audit-logs?limit=10", admin.Token, nil)
	expect(t, rec, http.StatusOK)
	if logs := decode[[]dashboard.AuditDTO](t, rec); len(logs) == 0 {
		t.Fatalf("expected the role change to be audited")
	}
}
