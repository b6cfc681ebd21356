package storage

import (
	"context"

	"github.com/google/uuid"
)

const AttachmentsBucket = "attachments"

// BlobStore выдаёт клиенту pre-signed URL для прямой загрузки файла.
// Само содержимое через бэкенд не проходит.
type BlobStore interface {
	IssuePresignedUpload(ctx context.Context, bucket string) (url string, objectID uuid.UUID, err error)
}
