package database

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/pkg/apperrors"
	"gorm.io/gorm"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

func (d *Database) GetMessage(channelID uuid.UUID, id int64) (*models.Message, error) {
	var message models.Message
	err := d.db.Where("channel_id = ? AND id = ?", channelID, id).Preload("Author").First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (d *Database) UpdateMessage(message *models.Message) error {
	return d.db.Save(message).Error
}

func (d *Database) DeleteMessage(channelID uuid.UUID, id int64) error {
	res := d.db.Where("channel_id = ?", channelID).Delete(&models.Message{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// GetChannelMessages получает страницу истории: id строго меньше beforeID,
// свежие запрашиваются первыми, наружу отдаются в хронологическом порядке
func (d *Database) GetChannelMessages(channelID uuid.UUID, beforeID int64, limit int) ([]models.Message, error) {
	if beforeID <= 0 {
		beforeID = math.MaxInt64
	}

	var messages []models.Message
	err := d.db.
		Where("channel_id = ? AND id < ?", channelID, beforeID).
		Order("id DESC").
		Limit(limit).
		Preload("Author").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
