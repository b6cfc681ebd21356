package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/pelican/internal/handlers/dto"
	"github.com/thereayou/pelican/internal/middleware"
	"github.com/thereayou/pelican/internal/models"
	"github.com/thereayou/pelican/internal/services"
)

type MessageHandler struct {
	channels *services.ChannelService
	messages *services.MessageService
}

func NewMessageHandler(channels *services.ChannelService, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{channels: channels, messages: messages}
}

// CreateMessage отправляет сообщение в канал
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}

	var req dto.MessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Create(c.Request.Context(), channel, userID, req.Content, req.Attachments)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessage отдаёт одно сообщение с разрешёнными вложениями
func (h *MessageHandler) GetMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}

	messageID, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	// Читают только участники
	if _, err := h.channels.GetMember(channel.ID, userID); err != nil {
		fail(c, err)
		return
	}

	view, err := h.messages.Get(channel, messageID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, formatMessageView(*view))
}

// EditMessage обновляет текст сообщения
func (h *MessageHandler) EditMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}

	messageID, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req dto.MessageEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messages.Edit(channel, messageID, userID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// DeleteMessage удаляет сообщение
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}

	messageID, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if err := h.messages.Delete(channel, messageID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListMessages получает историю канала с пагинацией
func (h *MessageHandler) ListMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channel, ok := h.resolveChannel(c)
	if !ok {
		return
	}

	// Историю читают только участники
	if _, err := h.channels.GetMember(channel.ID, userID); err != nil {
		fail(c, err)
		return
	}

	// Параметры пагинации
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID int64
	if before := c.Query("before"); before != "" {
		if parsed, err := strconv.ParseInt(before, 10, 64); err == nil {
			beforeID = parsed
		}
	}

	views, err := h.messages.List(channel, beforeID, limit)
	if err != nil {
		fail(c, err)
		return
	}

	result := make([]messageResponse, len(views))
	for i, view := range views {
		result[i] = formatMessageView(view)
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": result,
		"has_more": len(views) == limit,
	})
}

func (h *MessageHandler) resolveChannel(c *gin.Context) (*models.Channel, bool) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return nil, false
	}

	channel, err := h.channels.GetByID(channelID)
	if err != nil {
		fail(c, err)
		return nil, false
	}

	return channel, true
}

// messageResponse — та же форма, что уходит в конверте события,
// плюс разрешённые вложения вместо голых id. Потерянные позиции — null.
type messageResponse struct {
	services.MessagePayload
	Attachments []gin.H `json:"attachments"`
}

func formatMessageView(view services.MessageView) messageResponse {
	attachments := make([]gin.H, len(view.Attachments))
	for i, attachment := range view.Attachments {
		if attachment == nil {
			continue
		}
		attachments[i] = formatAttachmentResponse(attachment)
	}

	return messageResponse{
		MessagePayload: services.NewMessagePayload(view.Message, &view.Message.Author),
		Attachments:    attachments,
	}
}
