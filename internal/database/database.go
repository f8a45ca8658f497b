package database

import (
	"fmt"

	"github.com/BuildLoopLLC/clearview-core/internal/config"
	"github.com/BuildLoopLLC/clearview-core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.ContentItemModel{},
		&models.BlogCategoryModel{},
		&models.BlogPostModel{},
		&models.EventModel{},
		&models.EventRegistrationModel{},
		&models.BlockedDateModel{},
		&models.GalleryImageModel{},
		&models.StaffMemberModel{},
		&models.NewsletterSubscriberModel{},
		&models.ContactSubmissionModel{},
		&models.EmailSettingModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		// AutoMigrate won't widen an existing TEXT column.
		if err := db.Exec("ALTER TABLE `content_items` MODIFY COLUMN `metadata` LONGTEXT NULL").Error; err != nil {
			return err
		}
	}

	return nil
}
