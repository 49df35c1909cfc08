package main

import (
	"flag"
	"os"

	"skynest/internal/config"
	"skynest/internal/database"
	"skynest/internal/pkg/logger"
	"skynest/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Migrates the schema and loads demo data plus an admin login for local
// development.
func main() {
	adminEmail := flag.String("admin-email", "admin@skynest.local", "dashboard admin login")
	adminPassword := flag.String("admin-password", "", "dashboard admin password (required)")
	demo := flag.Bool("demo", true, "load demo rooms, guests and service catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log = log.Named("seed")

	if *adminPassword == "" {
		log.Error("admin-password flag is required")
		os.Exit(2)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if err := database.EnsureOverlapConstraint(db); err != nil {
		log.Fatal("overlap constraint setup failed", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("password hash failed", zap.Error(err))
	}
	if err := repository.SeedAccount(db, *adminEmail, string(hash), "admin"); err != nil {
		log.Fatal("admin account seed failed", zap.Error(err))
	}

	if *demo {
		if err := repository.SeedDemo(db); err != nil {
			log.Fatal("demo data seed failed", zap.Error(err))
		}
	}

	log.Info("seed complete", zap.String("admin", *adminEmail), zap.Bool("demo", *demo))
}
