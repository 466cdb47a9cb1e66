package database

import (
	"log"

	"github.com/eventio/ticketing-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Event{}, &models.Payment{}, &models.Reservation{}, &models.Ticket{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Partial unique index: the external payment id is unique whenever
	// present, but many rows share the empty value before settlement.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_external_id
		ON payments (external_payment_id)
		WHERE external_payment_id <> ''
	`)

	return db
}
