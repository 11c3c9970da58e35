package database

import (
    "fmt"

    "gorm.io/driver/postgres"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"

    "github.com/zaqqye/classroom_backend/internal/config"
    "github.com/zaqqye/classroom_backend/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
    dsn := fmt.Sprintf(
        "host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
        cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
    )
    return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &models.User{},
        &models.Message{},
        &models.Announcement{},
        &models.ScheduleItem{},
        &models.QuizResult{},
    )
}

// OpenTest returns an isolated in-memory sqlite DB with the full schema.
func OpenTest() (*gorm.DB, error) {
    db, err := gorm.Open(sqliteOpen(), &gorm.Config{
        Logger: logger.Default.LogMode(logger.Silent),
    })
    if err != nil {
        return nil, err
    }
    if err := Migrate(db); err != nil {
        return nil, err
    }
    return db, nil
}
