package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/pelican/internal/handlers"
	"github.com/thereayou/pelican/internal/middleware"
	"github.com/thereayou/pelican/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	channelH *handlers.ChannelHandler,
	messageH *handlers.MessageHandler,
	attachmentH *handlers.AttachmentHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(jwtMgr, rdb), authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/users/me", userH.GetMe)
		api.PATCH("/users/me", userH.UpdateMe)
		api.GET("/users/search", userH.SearchUsers)
		api.GET("/users/:id", userH.GetUser)

		api.POST("/channels", channelH.CreateChannel)
		api.GET("/channels/by-name/:name", channelH.GetChannelByName)
		api.GET("/channels/:id", channelH.GetChannelByID)
		api.PATCH("/channels/:id", channelH.EditChannel)
		api.DELETE("/channels/:id", channelH.DeleteChannel)

		api.PUT("/channels/:id/members/@me", channelH.JoinChannel)
		api.DELETE("/channels/:id/members/@me", channelH.LeaveChannel)
		api.GET("/channels/:id/members", channelH.ListMembers)
		api.GET("/channels/:id/members/:memberId", channelH.GetMember)

		api.POST("/channels/:id/messages", messageH.CreateMessage)
		api.GET("/channels/:id/messages", messageH.ListMessages)
		api.GET("/channels/:id/messages/:messageId", messageH.GetMessage)
		api.PATCH("/channels/:id/messages/:messageId", messageH.EditMessage)
		api.DELETE("/channels/:id/messages/:messageId", messageH.DeleteMessage)

		api.POST("/attachments", attachmentH.IssueUpload)
		api.POST("/attachments/confirm", attachmentH.Confirm)
	}

	// WebSocket gateway
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)
}
