package routes

import (
	"time"

	"social-service/internal/adapters/kafka"
	"social-service/internal/api/handlers"
	"social-service/internal/api/middleware"
	"social-service/internal/database"
	"social-service/internal/repository"
	"social-service/internal/service"
	"social-service/internal/services"
	"social-service/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Router struct {
	engine              *gin.Engine
	chatHandler         *handlers.ChatHandler
	notificationHandler *handlers.NotificationHandler
	socialHandler       *handlers.SocialHandler
	presenceHandler     *handlers.PresenceHandler
	uploadHandler       *handlers.UploadHandler
	wsHandler           *handlers.WSHandler
	rateLimitMW         *middleware.RateLimitMiddleware
	authMW              *middleware.AuthMiddleware
}

func NewRouter(
	hub *ws.Hub,
	redisService *services.RedisService,
	db *gorm.DB,
	blobs *database.MinIOClient,
	journal *kafka.Journal,
	jwtSecret string,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.LogApi())

	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	userRepo := repository.NewUserRepository(db)

	chatService := service.NewChatService(conversationRepo, messageRepo, userRepo, hub, journal)
	notificationService := service.NewNotificationService(notificationRepo, hub, journal)
	socialService := service.NewSocialService(postRepo, followRepo, likeRepo, notificationRepo, userRepo, hub, journal)

	return &Router{
		engine:              engine,
		chatHandler:         handlers.NewChatHandler(chatService),
		notificationHandler: handlers.NewNotificationHandler(notificationService),
		socialHandler:       handlers.NewSocialHandler(socialService),
		presenceHandler:     handlers.NewPresenceHandler(hub.Registry(), redisService),
		uploadHandler:       handlers.NewUploadHandler(blobs),
		wsHandler:           handlers.NewWSHandler(hub),
		rateLimitMW:         middleware.NewRateLimitMiddleware(redisService),
		authMW:              middleware.NewAuthMiddleware(jwtSecret),
	}
}

func (r *Router) SetupRoutes() {
	api := r.engine.Group("/api/v1")

	// The websocket handshake authenticates via query param; everything
	// else uses the Authorization header.
	api.GET("/ws", r.authMW.RequireWSAuth(), r.wsHandler.HandleWebSocket)

	authed := api.Group("/")
	authed.Use(r.authMW.RequireAuth())

	mutate := r.rateLimitMW.RateLimit(60, time.Minute)

	conversations := authed.Group("/conversations")
	{
		conversations.POST("", mutate, r.chatHandler.CreateConversation)
		conversations.GET("", r.chatHandler.ListConversations)
		conversations.GET("/:id", r.chatHandler.GetConversation)
		conversations.GET("/:id/messages", r.chatHandler.ListMessages)
		conversations.POST("/:id/messages", mutate, r.chatHandler.SendMessage)
		conversations.POST("/:id/seen", r.chatHandler.MarkSeen)
	}

	messages := authed.Group("/messages")
	{
		messages.PUT("/:id", mutate, r.chatHandler.EditMessage)
		messages.DELETE("/:id", r.chatHandler.DeleteMessage)
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", r.notificationHandler.List)
		notifications.GET("/unread-count", r.notificationHandler.UnreadCount)
		notifications.POST("/:id/read", r.notificationHandler.MarkRead)
		notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
	}

	posts := authed.Group("/posts")
	{
		posts.POST("", mutate, r.socialHandler.CreatePost)
		posts.POST("/:id/replies", mutate, r.socialHandler.Reply)
		posts.POST("/:id/like", mutate, r.socialHandler.Like)
		posts.DELETE("/:id/like", r.socialHandler.Unlike)
	}

	users := authed.Group("/users")
	{
		users.POST("/:id/follow", mutate, r.socialHandler.Follow)
		users.POST("/:id/follow/accept", r.socialHandler.AcceptFollow)
		users.DELETE("/:id/follow", r.socialHandler.Unfollow)
	}

	presence := authed.Group("/presence")
	{
		presence.GET("/online", r.presenceHandler.OnlineUsers)
		presence.GET("/:id", r.presenceHandler.UserStatus)
	}

	authed.POST("/uploads", mutate, r.uploadHandler.UploadImage)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
