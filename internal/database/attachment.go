package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/pkg/apperrors"
	"gorm.io/gorm"
)

func (d *Database) SaveAttachment(attachment *models.Attachment) error {
	return d.db.Create(attachment).Error
}

func (d *Database) GetAttachment(id int64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := d.db.First(&attachment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnknownAttachment
		}
		return nil, err
	}
	return &attachment, nil
}

func (d *Database) UpdateAttachment(attachment *models.Attachment) error {
	return d.db.Save(attachment).Error
}

// MarkAttachmentsUploaded снимает флаг pending у вложений пользователя
func (d *Database) MarkAttachmentsUploaded(userID uuid.UUID, ids []int64) error {
	return d.db.Model(&models.Attachment{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("pending", false).Error
}
