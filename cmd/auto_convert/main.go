package main

import (
	"context"
	"os"

	"skynest/internal/config"
	"skynest/internal/database"
	"skynest/internal/pkg/dates"
	"skynest/internal/pkg/logger"
	"skynest/internal/repository"
	"skynest/internal/scheduler"

	"go.uber.org/zap"
)

// Nightly batch: turn pre-bookings arriving in seven days into real
// bookings. Each pre-booking converts independently; one that cannot
// convert is cancelled so its rooms return to open inventory.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log = log.Named("auto_convert")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.EnsureOverlapConstraint(db); err != nil {
		log.Fatal("overlap constraint setup failed", zap.Error(err))
	}

	job := scheduler.NewAutoConvert(
		repository.NewPreBookingRepository(db),
		repository.NewBookingRepository(db),
		repository.NewRoomRepository(db),
		repository.NewGuestRepository(db),
		log,
	)

	rows, summary, err := job.Run(context.Background(), dates.Today())
	if err != nil {
		log.Error("batch failed", zap.Error(err))
		os.Exit(1)
	}

	for _, r := range rows {
		if r.Outcome == scheduler.OutcomeFailed {
			log.Warn("row failed", zap.Int64("pre_booking_id", r.ID), zap.String("detail", r.Detail))
		}
	}
	log.Info("batch finished",
		zap.Int("processed", summary.Processed),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
}
