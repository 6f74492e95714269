package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/petcrm/internal/config"
	"github.com/BruksfildServices01/petcrm/internal/logger"
	"github.com/BruksfildServices01/petcrm/internal/models"
)

// DefaultServices is the reference data every installation starts with.
var DefaultServices = []models.Service{
	{Type: "daycare", DurationMinutes: 240, Description: "Half-day daycare"},
	{Type: "grooming", DurationMinutes: 120, Description: "Grooming session"},
	{Type: "training", DurationMinutes: 60, Description: "Training class"},
	{Type: "walk", DurationMinutes: 60, Description: "Group walk"},
	{Type: "checkup", DurationMinutes: 30, Description: "Health check-up"},
	{Type: "bath", DurationMinutes: 60, Description: "Bath"},
	{Type: "nails", DurationMinutes: 30, Description: "Nail trimming"},
	{Type: "other", DurationMinutes: 60, Description: "Other service"},
}

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.ErrorLogger.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.ErrorLogger.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, cfg.DefaultTimezone); err != nil {
		logger.ErrorLogger.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB, defaultTZ string) error {
	if err := db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Tutor{},
		&models.Pet{},
		&models.CheckIn{},
		&models.TrainingEntry{},
		&models.Service{},
		&models.ServiceSlot{},
		&models.ServiceBooking{},
		&models.Woof{},
		&models.GlobalWoof{},
		&models.Invitation{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// AutoMigrate cannot express partial indexes.
	if err := db.Exec(fmt.Sprintf(`
        CREATE UNIQUE INDEX IF NOT EXISTS %s
        ON service_bookings (slot_id, pet_id)
        WHERE status IN ('pending', 'confirmed')
    `, models.ActiveBookingIndex)).Error; err != nil {
		return err
	}

	if err := db.Exec(`
        UPDATE businesses
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, defaultTZ).Error; err != nil {
		return err
	}

	return SeedServices(db)
}

func SeedServices(db *gorm.DB) error {
	services := make([]models.Service, len(DefaultServices))
	copy(services, DefaultServices)

	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}},
			DoNothing: true,
		}).
		Create(&services).Error
}
