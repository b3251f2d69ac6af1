package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/app"
	"github.com/Freeeeeet/tutor_portal/internal/config"
	"github.com/Freeeeeet/tutor_portal/internal/controller/httpapi"
	"github.com/Freeeeeet/tutor_portal/internal/notify"
	"github.com/Freeeeeet/tutor_portal/internal/repository"
	"github.com/Freeeeeet/tutor_portal/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor portal",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Репозитории
	blockRepo := repository.NewScheduleBlockRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	logRepo := repository.NewNotificationLogRepository(pool)
	lockRepo := repository.NewTaskLockRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)

	// Канал доставки напоминаний: телеграм при наличии токена,
	// иначе просто лог
	var notifier service.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			logger.Fatal("Failed to create telegram notifier", zap.Error(err))
		}
		notifier = tg
	} else {
		logger.Warn("TELEGRAM_TOKEN is not set, reminders go to log only")
		notifier = notify.NewConsoleNotifier(logger)
	}

	// Сервисы
	scheduling := service.NewSchedulingService(blockRepo, sessionRepo, logger)
	attendance := service.NewAttendanceService(sessionRepo, studentRepo, enrollmentRepo, attendanceRepo, cfg.QRTokenTTL, logger)
	students := service.NewStudentService(studentRepo, logger)
	reminders := service.NewReminderService(sessionRepo, studentRepo, logRepo, lockRepo, notifier, logger)

	// Фоновые задачи
	scheduler := app.NewScheduler(scheduling, attendance, reminders, cfg.GenerateDaysAhead, cfg.ReminderWindow, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP-сервер
	server := httpapi.NewServer(scheduling, attendance, students, groupRepo, blockRepo, sessionRepo, profileRepo, cfg.PublicBaseURL, logger)

	go func() {
		if err := server.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Tutor portal stopped")
}
