package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/redis/go-redis/v9"

	"github.com/shiftwork/attendance-bot-go/internal/config"
	"github.com/shiftwork/attendance-bot-go/internal/handler/chat"
	appHTTP "github.com/shiftwork/attendance-bot-go/internal/handler/http"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/jwt"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/push"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/session"
	"github.com/shiftwork/attendance-bot-go/internal/repository/postgresql"
	attendanceService "github.com/shiftwork/attendance-bot-go/internal/service/attendance"
	makeupService "github.com/shiftwork/attendance-bot-go/internal/service/makeup"
	notificationService "github.com/shiftwork/attendance-bot-go/internal/service/notification"
	payrollService "github.com/shiftwork/attendance-bot-go/internal/service/payroll"
	reportService "github.com/shiftwork/attendance-bot-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-bot"),
		slog.String("env", cfg.App.Env),
	)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	makeupRepo := postgresql.NewMakeupRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	sessionStore := session.NewRedisStore(redisClient, cfg.Redis.SessionTTL)

	var pusher notificationService.Pusher
	if cfg.PushEnabled() {
		pusher = push.NewClient(context.Background(), push.Config{
			ClientID:     cfg.Channel.ClientID,
			ClientSecret: cfg.Channel.ClientSecret,
			TokenURL:     cfg.Channel.TokenURL,
			PushURL:      cfg.Channel.PushURL,
		})
	} else {
		logger.Warn("channel push credentials missing, notifications are persisted only")
	}

	notifier := notificationService.NewNotificationService(notificationRepo, pusher, logger, notificationService.Config{})
	attendanceSvc := attendanceService.NewAttendanceService(transactor, attendanceRepo, scheduleRepo, loc)
	makeupSvc := makeupService.NewMakeupService(transactor, makeupRepo, attendanceSvc, employeeRepo, notifier, logger)
	reportSvc := reportService.NewReportService(attendanceRepo, scheduleRepo, makeupRepo, reportService.NoLeaveData{}, logger)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, reportSvc)

	chatHandler := chat.NewHandler(employeeRepo, attendanceSvc, makeupSvc, reportSvc, payrollSvc, sessionStore, loc, logger)

	webhookHandler := appHTTP.NewWebhookHandler(chatHandler)
	authHandler := appHTTP.NewAuthHandler(employeeRepo, jwtService, cfg.Auth.AdminKeyHash)
	reportHandler := appHTTP.NewReportHandler(reportSvc, payrollSvc)

	router := appHTTP.NewRouter(logger, jwtService, webhookHandler, authHandler, reportHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := notifier.Shutdown(shutdownCtx); err != nil {
		logger.Error("notifier shutdown failed", slog.Any("error", err))
	}
}
