package database

import (
	"errors"
	"fmt"

	config "github.com/educat/tutor_marketplace/configs"
	"github.com/educat/tutor_marketplace/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDB(cfg *config.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	logMode := gormLogger.Warn
	if cfg.IsProduction() {
		logMode = gormLogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	DB = db
	log.Info("database connected")
	return db, nil
}

// Migrate creates or updates every table the marketplace uses.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}
	err := db.AutoMigrate(
		&models.User{},
		&models.TeacherProfile{},
		&models.Subject{},
		&models.TeacherStudent{},
		&models.Lesson{},
		&models.Attachment{},
		&models.Review{},
		&models.TeacherSubject{},
		&models.PreparationProgram{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// SeedAdmin creates the admin account from configuration unless it already exists.
func SeedAdmin(db *gorm.DB, cfg *config.AppConfig, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		log.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check for admin user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info("admin user seeded", zap.String("email", admin.Email))
	return nil
}
