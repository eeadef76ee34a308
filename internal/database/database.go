package database

import (
	"fmt"
	"log"

	"cbt-portal-backend/internal/config"
	"cbt-portal-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto")

	err := db.AutoMigrate(
		&models.Profile{},
		&models.ExamType{},
		&models.Subject{},
		&models.Question{},
		&models.ExamSession{},
		&models.ExamSessionSubject{},
		&models.ExamAnswer{},
		&models.StudyNote{},
		&models.Literature{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
