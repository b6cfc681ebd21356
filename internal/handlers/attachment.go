package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/handlers/dto"
	"github.com/thereayou/pelican/internal/middleware"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/internal/services"
)

type AttachmentHandler struct {
	attachments *services.AttachmentService
}

func NewAttachmentHandler(attachments *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

// IssueUpload выдает pre-signed URL на каждый заявленный файл
func (h *AttachmentHandler) IssueUpload(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.AttachmentUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqs := make([]services.UploadRequest, len(req.Files))
	for i, file := range req.Files {
		reqs[i] = services.UploadRequest{Filename: file.Filename, ContentType: file.ContentType}
	}

	slots, err := h.attachments.IssueUploadSlots(c.Request.Context(), userID, reqs)
	if err != nil {
		fail(c, err)
		return
	}

	result := make([]dto.UploadSlotResponse, len(slots))
	for i, slot := range slots {
		result[i] = dto.UploadSlotResponse{ID: slot.Attachment.ID, URL: slot.URL}
	}

	c.JSON(http.StatusCreated, gin.H{"uploads": result})
}

// Confirm отмечает вложения как загруженные
func (h *AttachmentHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.AttachmentConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attachments, err := h.attachments.Confirm(userID, req.Attachments)
	if err != nil {
		fail(c, err)
		return
	}

	result := make([]gin.H, len(attachments))
	for i := range attachments {
		result[i] = formatAttachmentResponse(&attachments[i])
	}

	c.JSON(http.StatusOK, gin.H{"attachments": result})
}

func formatAttachmentResponse(attachment *models.Attachment) gin.H {
	return gin.H{
		"id":           attachment.ID,
		"filename":     attachment.Filename,
		"content_type": attachment.ContentType,
		"size":         attachment.Size,
		"pending":      attachment.Pending,
	}
}
