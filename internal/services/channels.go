package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/database"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/internal/permissions"
	"github.com/thereayou/pelican/pkg/apperrors"
)

type ChannelService struct {
	db *database.Database
}

func NewChannelService(db *database.Database) *ChannelService {
	return &ChannelService{db: db}
}

// Create создает канал; создатель сразу становится участником с правами владельца
func (s *ChannelService) Create(userID uuid.UUID, name, displayName, channelType string, public bool) (*models.Channel, error) {
	channel := &models.Channel{
		Name:        name,
		DisplayName: displayName,
		Type:        channelType,
		Public:      public,
		OwnerID:     userID,
		CreatedAt:   time.Now(),
	}

	err := s.db.Transaction(func(tx *database.Database) error {
		if err := tx.CreateChannel(channel); err != nil {
			return err
		}

		member := &models.Member{
			ChannelID:   channel.ID,
			UserID:      userID,
			Permissions: permissions.ChannelOwner,
			JoinedAt:    time.Now(),
		}
		return tx.CreateMember(member)
	})
	if err != nil {
		return nil, err
	}

	return channel, nil
}

func (s *ChannelService) GetByID(id uuid.UUID) (*models.Channel, error) {
	return s.db.GetChannel(id)
}

func (s *ChannelService) GetByName(name string) (*models.Channel, error) {
	return s.db.GetChannelByName(name)
}

type ChannelEdit struct {
	Name        *string
	DisplayName *string
	Public      *bool
}

// Edit обновляет только переданные поля
func (s *ChannelService) Edit(member *models.Member, channel *models.Channel, edit ChannelEdit) (*models.Channel, error) {
	if !permissions.HasAny(member.Permissions, permissions.Admin, permissions.ManageChannel) {
		return nil, apperrors.ErrMissingPermissions
	}

	if edit.Name != nil {
		channel.Name = *edit.Name
	}
	if edit.DisplayName != nil {
		channel.DisplayName = *edit.DisplayName
	}
	if edit.Public != nil {
		channel.Public = *edit.Public
	}

	if err := s.db.UpdateChannel(channel); err != nil {
		return nil, err
	}

	return channel, nil
}

// Delete удаляет канал каскадно вместе с участниками и сообщениями
func (s *ChannelService) Delete(member *models.Member, channel *models.Channel) error {
	if !permissions.HasAny(member.Permissions, permissions.Admin) {
		return apperrors.ErrMissingPermissions
	}

	return s.db.DeleteChannel(channel.ID)
}

// Join добавляет пользователя в канал с правами по умолчанию.
// Канал перечитывается внутри транзакции: его могли удалить параллельно.
func (s *ChannelService) Join(channelID, userID uuid.UUID) (*models.Member, error) {
	var member *models.Member

	err := s.db.Transaction(func(tx *database.Database) error {
		if _, err := tx.GetChannel(channelID); err != nil {
			return err
		}

		member = &models.Member{
			ChannelID:   channelID,
			UserID:      userID,
			Permissions: permissions.DefaultMember,
			JoinedAt:    time.Now(),
		}
		return tx.CreateMember(member)
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

func (s *ChannelService) Leave(channelID, userID uuid.UUID) error {
	return s.db.DeleteMember(channelID, userID)
}

func (s *ChannelService) GetMember(channelID, userID uuid.UUID) (*models.Member, error) {
	return s.db.GetMember(channelID, userID)
}

func (s *ChannelService) ListMembers(channelID uuid.UUID) ([]models.Member, error) {
	return s.db.GetMembers(channelID)
}
