// Command admin seeds or repairs the administrative account without starting
// the HTTP server. Useful for fresh databases and for rotating a lost admin
// password (-reset).
package main

import (
	"context"
	"flag"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-todo-api/internal/core/config"
	"go-todo-api/internal/core/database"
	"go-todo-api/internal/core/logger"
	"go-todo-api/internal/domain"
	"go-todo-api/internal/repo"
	"go-todo-api/internal/service"
	"go-todo-api/pkg/utils"
)

func main() {
	reset := flag.Bool("reset", false, "reset the admin password to the configured seed password")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repo.NewUserRepo(db)
	users := service.NewUserService(userRepo, log)

	admin, err := users.EnsureSeedAdmin(ctx, cfg.Seed.AdminName, cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}

	if *reset {
		if cfg.Seed.AdminPassword == "" {
			log.Fatal("seed admin password must be set for -reset")
		}
		admin.PasswordHash = utils.HashPassword(cfg.Seed.AdminPassword)
		if err := userRepo.UpdateVersioned(ctx, admin); err != nil {
			log.Fatal("password reset failed", zap.Error(err))
		}
		log.Info("admin password reset", zap.Uint64("id", admin.ID))
		return
	}

	log.Info("admin account ready", zap.Uint64("id", admin.ID), zap.String("name", admin.Name))
}
