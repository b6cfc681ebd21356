package database

import (
	"errors"
	"github.com/thereayou/pelican/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"os"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError нужен, чтобы нарушение уникальности приходило
	// как gorm.ErrDuplicatedKey, а не как сырая ошибка драйвера
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Member{},
		&models.Message{},
		&models.Attachment{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
