package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/Freeeeeet/tutor_portal/internal/app"
	"github.com/Freeeeeet/tutor_portal/internal/config"
	"github.com/Freeeeeet/tutor_portal/internal/repository"
	"github.com/Freeeeeet/tutor_portal/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Разовая генерация занятий из блоков расписания.
// Либо --start/--end с явным диапазоном дат, либо --days вперёд.
func main() {
	days := flag.Int("days", 7, "generate for the next N days")
	fromToday := flag.Bool("from-today", true, "start from today instead of tomorrow")
	teacherID := flag.Int64("teacher-id", 0, "limit generation to one teacher's groups (0 = all)")
	startStr := flag.String("start", "", "range start date (YYYY-MM-DD)")
	endStr := flag.String("end", "", "range end date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	blockRepo := repository.NewScheduleBlockRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	scheduling := service.NewSchedulingService(blockRepo, sessionRepo, logger)

	var scope *int64
	if *teacherID > 0 {
		scope = teacherID
	}

	var created int
	if *startStr != "" || *endStr != "" {
		start, err := time.Parse("2006-01-02", *startStr)
		if err != nil {
			logger.Fatal("Invalid --start date", zap.String("value", *startStr), zap.Error(err))
		}
		end, err := time.Parse("2006-01-02", *endStr)
		if err != nil {
			logger.Fatal("Invalid --end date", zap.String("value", *endStr), zap.Error(err))
		}

		created, err = scheduling.GenerateSessionsForRange(ctx, start, end, scope)
		if err != nil {
			logger.Fatal("Generation failed", zap.Error(err))
		}
	} else {
		created, err = scheduling.GenerateUpcoming(ctx, *days, *fromToday, scope)
		if err != nil {
			logger.Fatal("Generation failed", zap.Error(err))
		}
	}

	logger.Info("Done", zap.Int("created", created))
}
