package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/database"
	"github.com/thereayou/pelican/internal/gateway"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/internal/permissions"
	"github.com/thereayou/pelican/pkg/apperrors"
)

// EventPublisher — шина fan-out. Publish возвращается после постановки
// доставок в очередь.
type EventPublisher interface {
	Publish(recipients []uuid.UUID, payload interface{}, eventType string)
}

type MessageService struct {
	db          *database.Database
	attachments *AttachmentService
	bus         EventPublisher
}

func NewMessageService(db *database.Database, attachments *AttachmentService, bus EventPublisher) *MessageService {
	return &MessageService{db: db, attachments: attachments, bus: bus}
}

// MessagePayload — представление сообщения в конверте события и ответах API
type MessagePayload struct {
	ID          int64      `json:"id"`
	ChannelID   uuid.UUID  `json:"channel_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Content     string     `json:"content"`
	Attachments []int64    `json:"attachments"`
	CreatedAt   time.Time  `json:"created_at"`
	EditedAt    *time.Time `json:"edited_at,omitempty"`
}

func NewMessagePayload(message *models.Message, author *models.Member) MessagePayload {
	return MessagePayload{
		ID:          message.ID,
		ChannelID:   message.ChannelID,
		AuthorID:    author.UserID,
		Content:     message.Content,
		Attachments: message.AttachmentIDs,
		CreatedAt:   message.CreatedAt,
		EditedAt:    message.EditedAt,
	}
}

// Create проводит сообщение через пайплайн: участник -> права -> вложения ->
// запись. Всё внутри одной транзакции, чтобы параллельный отзыв прав или
// удаление канала не проскочили мимо проверки. Событие уходит после коммита.
// Наружу возвращается тот же MessagePayload, что разослан в конверте.
func (s *MessageService) Create(ctx context.Context, channel *models.Channel, userID uuid.UUID, content string, attachmentIDs []int64) (*MessagePayload, error) {
	var (
		message *models.Message
		author  *models.Member
	)

	err := s.db.Transaction(func(tx *database.Database) error {
		member, err := tx.GetMember(channel.ID, userID)
		if err != nil {
			return err
		}

		if !permissions.HasAny(member.Permissions, permissions.SendMessages, permissions.Admin) {
			return apperrors.ErrMissingPermissions
		}

		if len(attachmentIDs) > 0 {
			if !permissions.HasAny(member.Permissions, permissions.AttachFiles, permissions.Admin) {
				return apperrors.ErrMissingPermissions
			}
		}

		if attachmentIDs != nil {
			// Сбой резолва отменяет создание целиком: ни сообщения, ни ссылок
			if _, err := s.attachments.Resolve(tx, userID, attachmentIDs); err != nil {
				return apperrors.Wrap(apperrors.CodeUploadFailed, "attachment resolution failed", err)
			}
		}

		author = member
		message = &models.Message{
			ChannelID:     channel.ID,
			AuthorID:      member.ID,
			Content:       content,
			AttachmentIDs: attachmentIDs,
			CreatedAt:     time.Now(),
		}
		return tx.SaveMessage(message)
	})
	if err != nil {
		return nil, err
	}

	payload := NewMessagePayload(message, author)
	s.publish(channel.ID, payload, gateway.EventMessageCreate)

	return &payload, nil
}

// Edit меняет текст на месте; право на правку есть только у автора,
// ADMIN его не обходит
func (s *MessageService) Edit(channel *models.Channel, id int64, userID uuid.UUID, content string) (*MessagePayload, error) {
	member, err := s.db.GetMember(channel.ID, userID)
	if err != nil {
		return nil, err
	}

	message, err := s.db.GetMessage(channel.ID, id)
	if err != nil {
		return nil, err
	}

	if !message.IsAuthor(member) {
		return nil, apperrors.ErrMissingPermissions
	}

	now := time.Now()
	message.Content = content
	message.EditedAt = &now

	if err := s.db.UpdateMessage(message); err != nil {
		return nil, err
	}

	payload := NewMessagePayload(message, member)
	s.publish(channel.ID, payload, gateway.EventMessageUpdate)

	return &payload, nil
}

// Delete доступен автору либо держателю ADMIN/MANAGE_MESSAGES.
// В событие уходит только id, тело после удаления не разглашается.
func (s *MessageService) Delete(channel *models.Channel, id int64, userID uuid.UUID) error {
	member, err := s.db.GetMember(channel.ID, userID)
	if err != nil {
		return err
	}

	message, err := s.db.GetMessage(channel.ID, id)
	if err != nil {
		return err
	}

	if !message.IsAuthor(member) &&
		!permissions.HasAny(member.Permissions, permissions.Admin, permissions.ManageMessages) {
		return apperrors.ErrMissingPermissions
	}

	if err := s.db.DeleteMessage(channel.ID, id); err != nil {
		return err
	}

	s.publish(channel.ID, map[string]interface{}{"id": id}, gateway.EventMessageDelete)

	return nil
}

// MessageView — сообщение с разрешёнными вложениями для выдачи истории.
// Потерянное вложение остаётся nil и страницу не ломает.
type MessageView struct {
	Message     *models.Message
	Attachments []*models.Attachment
}

// Get возвращает одно сообщение канала с разрешёнными вложениями
func (s *MessageService) Get(channel *models.Channel, id int64) (*MessageView, error) {
	message, err := s.db.GetMessage(channel.ID, id)
	if err != nil {
		return nil, err
	}

	return &MessageView{Message: message, Attachments: s.resolveAttachments(message)}, nil
}

// List возвращает до limit сообщений с id строго меньше beforeID
// в хронологическом порядке
func (s *MessageService) List(channel *models.Channel, beforeID int64, limit int) ([]MessageView, error) {
	messages, err := s.db.GetChannelMessages(channel.ID, beforeID, limit)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, len(messages))
	for i := range messages {
		message := &messages[i]
		views[i] = MessageView{Message: message, Attachments: s.resolveAttachments(message)}
	}

	return views, nil
}

// resolveAttachments подтягивает вложения по ссылкам сообщения.
// Потерянная строка остаётся nil на своей позиции и выдачу не срывает.
func (s *MessageService) resolveAttachments(message *models.Message) []*models.Attachment {
	var attachments []*models.Attachment
	for _, attachmentID := range message.AttachmentIDs {
		attachment, err := s.db.GetAttachment(attachmentID)
		if err != nil {
			attachment = nil
		}
		attachments = append(attachments, attachment)
	}
	return attachments
}

// publish перечитывает получателей из базы на момент отправки.
// Ошибки fan-out не распространяются на уже закоммиченную мутацию.
func (s *MessageService) publish(channelID uuid.UUID, payload interface{}, eventType string) {
	recipients, err := s.db.ListMemberUserIDs(channelID)
	if err != nil {
		log.Printf("Failed to resolve recipients for channel %s: %v", channelID, err)
		return
	}

	s.bus.Publish(recipients, payload, eventType)
}
