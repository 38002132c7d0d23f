package http

import (
	"time"

	mw "themis-backend/internal/adapter/middleware"
	"themis-backend/internal/domain/user"
	"themis-backend/internal/usecase/auth"
	"themis-backend/internal/usecase/blacklist"
	"themis-backend/internal/usecase/dashboard"
	"themis-backend/internal/usecase/provisioning"
	"themis-backend/internal/usecase/puc"
	"themis-backend/internal/usecase/report"
	userUC "themis-backend/internal/usecase/user"
	"themis-backend/internal/usecase/visit"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps carries everything the routes need. Redis may be nil, which disables idempotent replay.
type Deps struct {
	DB           Pinger
	Redis        *redis.Client
	IdempTTL     time.Duration
	Log          *zap.Logger
	Auth         *auth.Usecase
	PUCs         *puc.Usecase
	Provisioning *provisioning.Usecase
	Visits       *visit.Usecase
	Blacklist    *blacklist.Usecase
	Users        *userUC.Usecase
	Dashboard    *dashboard.Usecase
	Reports      *report.Usecase
}

// Register mounts /health and the /api routes on e.
func Register(e *echo.Echo, d Deps) {
	health := NewHandler(d.DB)
	authH := NewAuthHandler(d.Auth)
	pucH := NewPUCHandler(d.PUCs, d.Provisioning)
	visitH := NewVisitHandler(d.Visits)
	blackH := NewBlacklistHandler(d.Blacklist)
	adminH := NewAdminHandler(d.Users, d.Dashboard)
	reportH := NewReportHandler(d.Reports)

	idem := mw.Idempotency(d.Redis, d.IdempTTL, d.Log)
	staff := mw.RequireRoles(user.RoleAdmin, user.RoleOfficer)
	admin := mw.RequireRoles(user.RoleAdmin)
	officer := mw.RequireRoles(user.RoleOfficer)

	e.GET("/health", health.Health)

	api := e.Group("/api")
	api.POST("/signup", authH.Signup, idem)
	api.POST("/login", authH.Login)

	g := api.Group("", mw.Auth(d.Auth, auth.TokenFromHeader))
	g.GET("/profile", authH.Profile)

	g.GET("/pucs", pucH.Search)
	g.GET("/pucs/:id", pucH.Get)
	g.POST("/pucs", pucH.Create, staff)
	g.PUT("/pucs/:id", pucH.Update, staff)
	g.POST("/pucs/:id/visitors", pucH.ProvisionVisitor, staff, idem)
	g.GET("/categories", pucH.Categories)
	g.GET("/crimetypes", pucH.CrimeTypes)
	g.GET("/visitors", adminH.Visitors, staff)

	g.POST("/visit-requests", visitH.Submit, idem)
	g.GET("/visit-requests", visitH.List)
	g.GET("/my-visits", visitH.Mine)
	g.GET("/visitor-logs", visitH.List, staff)
	g.PUT("/visitor-logs/:id/approve", visitH.Approve, staff)
	g.PUT("/visitor-logs/:id/reject", visitH.Reject, staff)

	g.POST("/blacklist", blackH.Add, staff)
	g.GET("/blacklist", blackH.List, staff)
	g.DELETE("/blacklist/:id", blackH.Remove, staff)

	g.GET("/export/:kind/:format", reportH.Export, staff)
	g.GET("/dashboard/stats", adminH.GlobalStats)

	ag := g.Group("/admin", admin)
	ag.GET("/dashboard/stats", adminH.AdminStats)
	ag.GET("/users", adminH.Users)
	ag.PUT("/users/:id/role", adminH.UpdateRole)
	ag.DELETE("/users/:id", adminH.DeleteUser)
	ag.GET("/approvals", visitH.Pending)
	ag.GET("/blacklisted", blackH.List)
	ag.GET("/audit-logs", adminH.AuditLogs)
	ag.GET("/visitor-logs", visitH.List)
	ag.GET("/reports/status-changes", adminH.StatusChanges)
	ag.GET("/approved-visitors", adminH.ApprovedVisitors)

	og := g.Group("/officer", officer)
	og.GET("/dashboard/stats", adminH.OfficerStats)
	og.GET("/approvals", visitH.Pending)
	og.GET("/blacklisted", blackH.List)
}
