package db

import (
	"fmt"
	"log"
	"os"

	"Gin_postgres_redis_library_lending/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Invite{},
		&models.Author{},
		&models.Genre{},
		&models.Language{},
		&models.Book{},
		&models.BookCopy{},
	); err != nil {
		return err
	}

	// Speeds up the loan/request listings, which always filter on status
	// and sort by due date.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_status_due_back
	  ON %s (status, due_back);
	`, models.CopyTable, models.CopyTable)).Error; err != nil {
		return err
	}

	return nil
}
