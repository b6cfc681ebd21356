package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/pelican/internal/database"
	"github.com/thereayou/pelican/internal/gateway"
	"github.com/thereayou/pelican/internal/handlers"
	"github.com/thereayou/pelican/internal/services"
	"github.com/thereayou/pelican/internal/storage"
	ws "github.com/thereayou/pelican/internal/websocket"
	"github.com/thereayou/pelican/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Bus        *gateway.Bus
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	bus := gateway.NewBus(hub)

	presigner := storage.NewPresigner(
		storageBaseURL(),
		os.Getenv("STORAGE_SECRET"),
		15*time.Minute,
	)

	channelSvc := services.NewChannelService(dbConn)
	attachmentSvc := services.NewAttachmentService(dbConn, presigner)
	messageSvc := services.NewMessageService(dbConn, attachmentSvc, bus)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn)
	channelH := handlers.NewChannelHandler(channelSvc)
	messageH := handlers.NewMessageHandler(channelSvc, messageSvc)
	attachmentH := handlers.NewAttachmentHandler(attachmentSvc)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, channelH, messageH, attachmentH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Bus:        bus,
	}
}

// Run обслуживает запросы до SIGINT/SIGTERM, затем гасит HTTP,
// дорассылает очередь шины и закрывает сокеты
func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server run error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}

	s.Bus.Close()
	s.Hub.Stop()
}

func storageBaseURL() string {
	if url := os.Getenv("STORAGE_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:9000"
}
