package db

import (
	"fmt"
	"time"

	"aoa/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Open connects to PostgreSQL and returns a gorm handle.
func Open(dsn string, debug bool, log *zap.SugaredLogger) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("Database connection established")
	return db, nil
}

// Migrate creates or updates every table the app reads and writes.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.AdminUser{},
		&models.Post{},
		&models.Vote{},
		&models.Comment{},
		&models.CommentReaction{},
		&models.Report{},
		&models.Ad{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// SeedAdmins makes sure every configured account id is on the admin
// allow-list. Existing rows are left alone.
func SeedAdmins(db *gorm.DB, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}

	admins := make([]models.AdminUser, 0, len(userIDs))
	for _, id := range userIDs {
		admins = append(admins, models.AdminUser{UserID: id})
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admins).Error
	if err != nil {
		return fmt.Errorf("seed admin users: %w", err)
	}
	return nil
}
