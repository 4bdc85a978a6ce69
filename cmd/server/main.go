// @title                       Attendance & Leave API
// @version                     1.0
// @description                 Student rosters, class attendance, reports and leave requests for college departments.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cse-attendance/attendance-system/internal/api"
	"github.com/cse-attendance/attendance-system/internal/api/handler"
	"github.com/cse-attendance/attendance-system/internal/core/service"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/db/mongo"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/db/redis"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/queue"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/spreadsheet"
	"github.com/cse-attendance/attendance-system/internal/pkg/config"
	"github.com/cse-attendance/attendance-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "attendance-api",
	})

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	users := mongo.NewUserRepository(db)
	attendanceRepo := mongo.NewAttendanceRepository(db)
	leaveRepo := mongo.NewLeaveRepository(db)
	authRepo := mongo.NewAuthRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, attendanceRepo, leaveRepo, authRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rosterCache := redis.NewRosterCache(rdb, cfg.Redis.RosterTTL)
	guard := redis.NewSubmissionGuard(rdb, cfg.Redis.SubmissionTTL)
	fanout := queue.NewFanout(cfg.WriteConcurrency, logger.For("fanout"))

	// --- Services ---
	rosterSvc := service.NewRosterService(users, rosterCache, cfg.DefaultDepartment, logger.For("roster"))
	attendanceSvc := service.NewAttendanceService(users, attendanceRepo, fanout, guard, logger.For("attendance"))
	leaveSvc := service.NewLeaveService(leaveRepo, logger.For("leave"))

	svc := api.Services{
		Auth:       service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, logger.For("auth")),
		Roster:     rosterSvc,
		Import:     service.NewImportService(users, rosterCache, spreadsheet.New(), fanout, logger.For("import")),
		Reports:    service.NewReportService(rosterSvc, attendanceRepo, logger.For("report")),
		Attendance: attendanceSvc,
		Leaves:     leaveSvc,
		Dashboard:  service.NewDashboardService(attendanceSvc, rosterSvc, leaveSvc, leaveRepo, logger.For("dashboard")),
	}

	e := api.NewRouter(svc, api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Log:       logger.For("http"),
		Health: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, mongoClient) },
			"redis":   func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
