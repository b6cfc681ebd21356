package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/pkg/apperrors"
	"gorm.io/gorm"
)

func (d *Database) CreateMember(member *models.Member) error {
	if err := d.db.Create(member).Error; err != nil {
		// Уникальный индекс (channel_id, user_id) гасит гонку двух join
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrMemberAlreadyExists
		}
		return err
	}
	return nil
}

func (d *Database) GetMember(channelID, userID uuid.UUID) (*models.Member, error) {
	var member models.Member
	err := d.db.Where("channel_id = ? AND user_id = ?", channelID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetMembers возвращает участников в порядке вступления
func (d *Database) GetMembers(channelID uuid.UUID) ([]models.Member, error) {
	var members []models.Member
	err := d.db.
		Where("channel_id = ?", channelID).
		Order("id ASC").
		Preload("User").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (d *Database) UpdateMember(member *models.Member) error {
	return d.db.Save(member).Error
}

func (d *Database) DeleteMember(channelID, userID uuid.UUID) error {
	res := d.db.Where("channel_id = ? AND user_id = ?", channelID, userID).Delete(&models.Member{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// ListMemberUserIDs — получатели fan-out. Всегда свежее чтение из базы,
// а не из переданного в пайплайн объекта канала.
func (d *Database) ListMemberUserIDs(channelID uuid.UUID) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := d.db.Model(&models.Member{}).
		Where("channel_id = ?", channelID).
		Order("id ASC").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
