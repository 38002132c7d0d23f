package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadp "themis-backend/internal/adapter/http"
	mw "themis-backend/internal/adapter/middleware"
	"themis-backend/internal/adapter/repository/mysql"
	"themis-backend/internal/config"
	"themis-backend/internal/infrastructure/cache"
	"themis-backend/internal/infrastructure/db"
	"themis-backend/internal/logger"
	"themis-backend/internal/usecase/auth"
	"themis-backend/internal/usecase/blacklist"
	"themis-backend/internal/usecase/dashboard"
	"themis-backend/internal/usecase/provisioning"
	"themis-backend/internal/usecase/puc"
	"themis-backend/internal/usecase/report"
	"themis-backend/internal/usecase/user"
	"themis-backend/internal/usecase/visit"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "themis-api")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), db.WithLogLevel(cfg.LogLevel))
	if err != nil {
		zl.Fatal("open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		zl.Fatal("database handle", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			zl.Fatal("migrate", zap.Error(err))
		}
		zl.Info("schema migrated", zap.String("driver", cfg.DBDriver))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.OpenRedis(context.Background(), cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			zl.Warn("redis unavailable, idempotent replay disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			rdb = nil
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	// repositories
	users := mysql.NewUserRepository(gdb)
	visitors := mysql.NewVisitorRepository(gdb)
	pucs := mysql.NewPUCRepository(gdb)
	visits := mysql.NewVisitRepository(gdb)
	entries := mysql.NewBlacklistRepository(gdb)
	audits := mysql.NewAuditRepository(gdb)
	reports := mysql.NewReportRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	// use cases
	authUC := auth.NewUsecase(users, tx, auth.Config{
		Secret:               []byte(cfg.JWTSecret),
		TTL:                  cfg.TokenTTL,
		AllowLegacyPlaintext: cfg.AllowLegacyPlain,
	}, zl)
	if _, err := authUC.EnsureAdmin(context.Background(), cfg.BootstrapAdminUser, cfg.BootstrapAdminPass); err != nil {
		zl.Fatal("bootstrap admin", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.NewErrorHandler(zl)
	e.Use(
		middleware.RequestID(),
		mw.RequestLog(zl),
		middleware.Recover(),
		middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CORSAllowOrigins}),
	)

	httpadp.Register(e, httpadp.Deps{
		DB:           sqlDB,
		Redis:        rdb,
		IdempTTL:     cfg.IdempotencyTTL(),
		Log:          zl,
		Auth:         authUC,
		PUCs:         puc.NewUsecase(pucs, visitors, tx, zl),
		Provisioning: provisioning.NewUsecase(tx, zl),
		Visits:       visit.NewUsecase(visits, tx),
		Blacklist:    blacklist.NewUsecase(entries, tx),
		Users:        user.NewUsecase(users, visitors, tx),
		Dashboard:    dashboard.NewUsecase(reports, audits),
		Reports:      report.NewUsecase(reports),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		zl.Info("listening", zap.String("addr", srv.Addr))
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
