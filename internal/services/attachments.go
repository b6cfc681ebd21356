package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/database"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/internal/storage"
	"github.com/thereayou/pelican/pkg/apperrors"
)

// Лимит на поход в blob store за pre-signed URL
const issueSlotTimeout = 10 * time.Second

type AttachmentService struct {
	db    *database.Database
	blobs storage.BlobStore
}

func NewAttachmentService(db *database.Database, blobs storage.BlobStore) *AttachmentService {
	return &AttachmentService{db: db, blobs: blobs}
}

type UploadRequest struct {
	Filename    string
	ContentType string
}

type UploadSlot struct {
	URL        string
	Attachment *models.Attachment
}

// IssueUploadSlot брокерует pre-signed URL и фиксирует вложение как pending.
// Содержимое файла через бэкенд не проходит.
func (s *AttachmentService) IssueUploadSlot(ctx context.Context, userID uuid.UUID, req UploadRequest) (*UploadSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, issueSlotTimeout)
	defer cancel()

	url, objectID, err := s.blobs.IssuePresignedUpload(ctx, storage.AttachmentsBucket)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUploadFailed, "could not issue upload slot", err)
	}

	attachment := &models.Attachment{
		UserID:      userID,
		StorageKey:  objectID.String(),
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Pending:     true,
		CreatedAt:   time.Now(),
	}

	if err := s.db.SaveAttachment(attachment); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUploadFailed, "could not save attachment", err)
	}

	return &UploadSlot{URL: url, Attachment: attachment}, nil
}

// IssueUploadSlots выдает слоты пачкой, по одному на файл
func (s *AttachmentService) IssueUploadSlots(ctx context.Context, userID uuid.UUID, reqs []UploadRequest) ([]UploadSlot, error) {
	if len(reqs) == 0 {
		return nil, apperrors.ErrAttachmentsEmpty
	}

	slots := make([]UploadSlot, 0, len(reqs))
	for _, req := range reqs {
		slot, err := s.IssueUploadSlot(ctx, userID, req)
		if err != nil {
			return nil, err
		}
		slots = append(slots, *slot)
	}

	return slots, nil
}

// Resolve материализует вложения по id в порядке запроса.
// Владелец сверяется строго по равенству, членство в канале роли не играет.
func (s *AttachmentService) Resolve(tx *database.Database, userID uuid.UUID, ids []int64) ([]models.Attachment, error) {
	if ids != nil && len(ids) == 0 {
		return nil, apperrors.ErrAttachmentsEmpty
	}

	attachments := make([]models.Attachment, 0, len(ids))
	for _, id := range ids {
		attachment, err := tx.GetAttachment(id)
		if err != nil {
			return nil, err
		}
		if attachment.UserID != userID {
			return nil, apperrors.ErrUnknownAttachment
		}
		attachments = append(attachments, *attachment)
	}

	return attachments, nil
}

// Confirm снимает флаг pending: клиент сообщил, что загрузка завершена
func (s *AttachmentService) Confirm(userID uuid.UUID, ids []int64) ([]models.Attachment, error) {
	attachments, err := s.Resolve(s.db, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(attachments) == 0 {
		return nil, apperrors.ErrAttachmentsEmpty
	}

	if err := s.db.MarkAttachmentsUploaded(userID, ids); err != nil {
		return nil, err
	}

	for i := range attachments {
		attachments[i].Pending = false
	}

	return attachments, nil
}
