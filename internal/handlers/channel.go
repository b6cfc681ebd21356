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

type ChannelHandler struct {
	channels *services.ChannelService
}

func NewChannelHandler(channels *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// CreateChannel создает новый канал
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.ChannelCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.channels.Create(userID, req.Name, req.DisplayName, req.Type, req.Public)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatChannelResponse(channel))
}

// GetChannelByID получает канал по идентификатору
func (h *ChannelHandler) GetChannelByID(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	channel, err := h.channels.GetByID(channelID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, formatChannelResponse(channel))
}

// GetChannelByName получает канал по slug-имени
func (h *ChannelHandler) GetChannelByName(c *gin.Context) {
	channel, err := h.channels.GetByName(c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, formatChannelResponse(channel))
}

// EditChannel обновляет только переданные поля
func (h *ChannelHandler) EditChannel(c *gin.Context) {
	channel, member, ok := h.resolveChannelMember(c)
	if !ok {
		return
	}

	var req dto.ChannelEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel, err := h.channels.Edit(member, channel, services.ChannelEdit{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Public:      req.Public,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, formatChannelResponse(channel))
}

// DeleteChannel удаляет канал вместе с участниками и сообщениями
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	channel, member, ok := h.resolveChannelMember(c)
	if !ok {
		return
	}

	if err := h.channels.Delete(member, channel); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// JoinChannel добавляет текущего пользователя в канал
func (h *ChannelHandler) JoinChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	member, err := h.channels.Join(channelID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, formatMemberResponse(member))
}

// LeaveChannel убирает текущего пользователя из канала
func (h *ChannelHandler) LeaveChannel(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	if err := h.channels.Leave(channelID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetMember получает участника канала; "@me" — текущий пользователь
func (h *ChannelHandler) GetMember(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	memberParam := c.Param("memberId")
	if memberParam == "@me" {
		memberParam = c.MustGet(middleware.UserIDKey).(uuid.UUID).String()
	}

	memberUserID, err := uuid.Parse(memberParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}

	member, err := h.channels.GetMember(channelID, memberUserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, formatMemberResponse(member))
}

// ListMembers возвращает участников в порядке вступления
func (h *ChannelHandler) ListMembers(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	members, err := h.channels.ListMembers(channelID)
	if err != nil {
		fail(c, err)
		return
	}

	result := make([]gin.H, len(members))
	for i := range members {
		result[i] = formatMemberResponse(&members[i])
	}

	c.JSON(http.StatusOK, gin.H{"members": result})
}

// resolveChannelMember загружает канал из path-параметра и участника-вызывающего
func (h *ChannelHandler) resolveChannelMember(c *gin.Context) (*models.Channel, *models.Member, bool) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return nil, nil, false
	}

	channel, err := h.channels.GetByID(channelID)
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}

	member, err := h.channels.GetMember(channelID, userID)
	if err != nil {
		fail(c, err)
		return nil, nil, false
	}

	return channel, member, true
}

func formatChannelResponse(channel *models.Channel) gin.H {
	return gin.H{
		"id":           channel.ID,
		"name":         channel.Name,
		"display_name": channel.DisplayName,
		"type":         channel.Type,
		"public":       channel.Public,
		"owner_id":     channel.OwnerID,
		"created_at":   channel.CreatedAt,
	}
}

func formatMemberResponse(member *models.Member) gin.H {
	return gin.H{
		"id":          member.ID,
		"channel_id":  member.ChannelID,
		"user_id":     member.UserID,
		"permissions": member.Permissions,
		"joined_at":   member.JoinedAt,
	}
}
