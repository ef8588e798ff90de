package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vmmcore/internal/auth"
	"vmmcore/internal/config"
	"vmmcore/internal/httpserver"
	"vmmcore/internal/logger"
	"vmmcore/internal/models"
	"vmmcore/internal/services"
)

func main() {
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Owner{}, &models.Admin{}, &models.User{}, &models.Company{},
		&models.Account{}, &models.Group{}, &models.VM{}, &models.Server{},
		&models.Config{}, &models.Log{}, &models.Version{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	seedDefaultOwner(db, lg)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	svc := services.New(db, tokens, lg)
	router := httpserver.NewRouter(db, svc, tokens, lg)

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}

func seedDefaultOwner(db *gorm.DB, lg *zap.SugaredLogger) {
	var count int64
	db.Model(&models.Owner{}).Where("deleted = ?", false).Count(&count)
	if count > 0 {
		return
	}
	hash, _ := auth.HashPassword("admin")
	o := models.Owner{Username: "admin", HashedPassword: hash}
	if err := db.Create(&o).Error; err != nil {
		lg.Warnw("owner seed failed", "error", err)
		return
	}
	lg.Infow("seeded default owner", "username", o.Username)
}
