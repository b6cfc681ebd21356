package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/pelican/pkg/apperrors"
)

type fakeBlobStore struct {
	mu     sync.Mutex
	err    error
	issued int
}

func (f *fakeBlobStore) IssuePresignedUpload(ctx context.Context, bucket string) (string, uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", uuid.Nil, f.err
	}
	if err := ctx.Err(); err != nil {
		return "", uuid.Nil, err
	}

	f.issued++
	objectID := uuid.New()
	return "http://blobs.local/" + bucket + "/" + objectID.String(), objectID, nil
}

func TestIssueUploadSlot(t *testing.T) {
	db := newTestDB(t)
	blobs := &fakeBlobStore{}
	svc := NewAttachmentService(db, blobs)
	user := createTestUser(t, db, "alice")

	slot, err := svc.IssueUploadSlot(context.Background(), user.ID, UploadRequest{
		Filename:    "photo.png",
		ContentType: "image/png",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, slot.URL)
	assert.Equal(t, 1, blobs.issued)

	// Вложение записано как pending и принадлежит загрузившему
	attachment, err := db.GetAttachment(slot.Attachment.ID)
	require.NoError(t, err)
	assert.True(t, attachment.Pending)
	assert.Equal(t, user.ID, attachment.UserID)
	assert.Equal(t, "photo.png", attachment.Filename)
	assert.Contains(t, slot.URL, attachment.StorageKey)
}

func TestIssueUploadSlotBlobStoreFailure(t *testing.T) {
	db := newTestDB(t)
	blobs := &fakeBlobStore{err: errors.New("store unavailable")}
	svc := NewAttachmentService(db, blobs)
	user := createTestUser(t, db, "alice")

	_, err := svc.IssueUploadSlot(context.Background(), user.ID, UploadRequest{Filename: "a.txt", ContentType: "text/plain"})
	assert.ErrorIs(t, err, apperrors.ErrUploadFailed)
}

func TestIssueUploadSlotsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, &fakeBlobStore{})
	user := createTestUser(t, db, "alice")

	_, err := svc.IssueUploadSlots(context.Background(), user.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrAttachmentsEmpty)
}

func TestResolveAttachments(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, &fakeBlobStore{})
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first, err := svc.IssueUploadSlot(context.Background(), alice.ID, UploadRequest{Filename: "a.png", ContentType: "image/png"})
	require.NoError(t, err)
	second, err := svc.IssueUploadSlot(context.Background(), alice.ID, UploadRequest{Filename: "b.png", ContentType: "image/png"})
	require.NoError(t, err)

	// Порядок запроса сохраняется
	resolved, err := svc.Resolve(db, alice.ID, []int64{second.Attachment.ID, first.Attachment.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 2)
	assert.Equal(t, second.Attachment.ID, resolved[0].ID)
	assert.Equal(t, first.Attachment.ID, resolved[1].ID)

	// Несуществующий id
	_, err = svc.Resolve(db, alice.ID, []int64{first.Attachment.ID, 9999})
	assert.ErrorIs(t, err, apperrors.ErrUnknownAttachment)

	// Чужое вложение: владелец сверяется строго, членство не играет роли
	_, err = svc.Resolve(db, bob.ID, []int64{first.Attachment.ID})
	assert.ErrorIs(t, err, apperrors.ErrUnknownAttachment)

	// Непустой, но пустой список
	_, err = svc.Resolve(db, alice.ID, []int64{})
	assert.ErrorIs(t, err, apperrors.ErrAttachmentsEmpty)
}

func TestConfirmAttachments(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, &fakeBlobStore{})
	user := createTestUser(t, db, "alice")

	slot, err := svc.IssueUploadSlot(context.Background(), user.ID, UploadRequest{Filename: "a.png", ContentType: "image/png"})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(user.ID, []int64{slot.Attachment.ID})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.False(t, confirmed[0].Pending)

	attachment, err := db.GetAttachment(slot.Attachment.ID)
	require.NoError(t, err)
	assert.False(t, attachment.Pending)
}

func TestConfirmAttachmentsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, &fakeBlobStore{})
	user := createTestUser(t, db, "alice")

	_, err := svc.Confirm(user.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrAttachmentsEmpty)
}
