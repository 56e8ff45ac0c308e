package utils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studytrack/backend/config"
	"studytrack/backend/models"
)

// InitDB opens the Postgres connection and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.StudyPlan{},
		&models.Goal{},
		&models.DailySchedule{},
		&models.ScheduleItem{},
		&models.SubmissionRecord{},
		&models.AutomationSettings{},
	)
	if err != nil {
		return nil, fmt.Errorf("could not migrate schema: %w", err)
	}

	return db, nil
}
