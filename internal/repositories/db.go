package repositories

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// ConnectDatabase opens the Postgres connection and migrates the given models.
func ConnectDatabase(dsn string, models ...any) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Successfully connected to database")
	return db
}
