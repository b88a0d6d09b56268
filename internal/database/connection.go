// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.User{},
		&models.Agency{},
		&models.RosterMember{},
		&models.LicenseTemplate{},
		&models.LicenseSubmission{},
		&models.ScoutingProspect{},
		&models.Booking{},
		&models.CreditEntry{},
		&models.GenerationJob{},
		&models.Transaction{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_type_status ON users(user_type, status)",

		// Roster indexes
		"CREATE INDEX IF NOT EXISTS idx_roster_members_agency ON roster_members(agency_id)",
		"CREATE INDEX IF NOT EXISTS idx_roster_members_active ON roster_members(agency_id, is_active)",

		// Template and submission indexes
		"CREATE INDEX IF NOT EXISTS idx_license_templates_agency ON license_templates(agency_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_license_submissions_agency ON license_submissions(agency_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_license_submissions_template ON license_submissions(template_id)",
		"CREATE INDEX IF NOT EXISTS idx_license_submissions_sent_at ON license_submissions(sent_at DESC)",

		// Scouting indexes; duplicate detection is agency-scoped equality on
		// the normalized columns
		"CREATE INDEX IF NOT EXISTS idx_prospects_agency_stage ON scouting_prospects(agency_id, stage)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_prospects_agency_email ON scouting_prospects(agency_id, email) WHERE email <> '' AND deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_prospects_agency_handle ON scouting_prospects(agency_id, instagram_handle) WHERE instagram_handle <> '' AND deleted_at IS NULL",

		// Booking indexes
		"CREATE INDEX IF NOT EXISTS idx_bookings_agency_status ON bookings(agency_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_talent ON bookings(talent_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_brand ON bookings(brand_user_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_dates ON bookings(start_date, end_date)",

		// Credit and transaction indexes
		"CREATE INDEX IF NOT EXISTS idx_credit_entries_user ON credit_entries(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_generation_jobs_user_status ON generation_jobs(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_type_status ON transactions(transaction_type, status)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search over roster bios
		"CREATE INDEX IF NOT EXISTS idx_roster_members_search ON roster_members USING GIN(to_tsvector('english', full_name || ' ' || bio))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	// Create default admin user
	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@likelee.ai",
			UserType: models.UserTypeAdmin,
			Status:   models.UserStatusActive,
			ProfileData: models.JSONB{
				"first_name": "System",
				"last_name":  "Administrator",
				"role":       "super_admin",
			},
		}

		if err := admin.SetPassword("admin123!@#"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}

		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		log.Println("Default admin user created successfully")
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
