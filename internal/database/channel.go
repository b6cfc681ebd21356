package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/pkg/apperrors"
	"gorm.io/gorm"
)

func (d *Database) CreateChannel(channel *models.Channel) error {
	if err := d.db.Create(channel).Error; err != nil {
		// Коллизия slug-имени
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrChannelAlreadyExists
		}
		return err
	}
	return nil
}

func (d *Database) GetChannel(id uuid.UUID) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.First(&channel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChannelNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (d *Database) GetChannelByName(name string) (*models.Channel, error) {
	var channel models.Channel
	if err := d.db.Where("name = ?", name).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChannelNotFound
		}
		return nil, err
	}
	return &channel, nil
}

func (d *Database) UpdateChannel(channel *models.Channel) error {
	if err := d.db.Save(channel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrChannelAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteChannel удаляет канал вместе с участниками и сообщениями
func (d *Database) DeleteChannel(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Message{}, "channel_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Member{}, "channel_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Channel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrChannelNotFound
		}
		return nil
	})
}
