package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MaheshMoholkar/slack/internal/models"
)

// Connect opens the postgres connection from DATABASE_URL and runs
// migrations. TranslateError makes uniqueness violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Connect() (*Database, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.Member{},
		&models.Channel{},
		&models.Conversation{},
		&models.Message{},
		&models.Reaction{},
	)
}
