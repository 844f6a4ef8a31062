package server

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MaheshMoholkar/slack/internal/database"
	"github.com/MaheshMoholkar/slack/internal/events"
	"github.com/MaheshMoholkar/slack/internal/handlers"
	"github.com/MaheshMoholkar/slack/internal/services"
	"github.com/MaheshMoholkar/slack/internal/websocket"
	"github.com/MaheshMoholkar/slack/pkg/auth"
)

type Server struct {
	Router      *gin.Engine
	DB          *database.Database
	Redis       *redis.Client
	Broadcaster *events.Broadcaster
	Hub         *websocket.Hub
	Log         *zap.Logger
}

func NewServer() *Server {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logger.Info(".env not found, using environment variables")
		}
	}

	db, err := database.Connect()
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		logger.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	broadcaster := events.NewBroadcaster(logger)
	presence := services.NewPresenceService(broadcaster, logger)
	hub := websocket.NewHub(broadcaster, presence, logger)
	go hub.Run()

	workspaces := services.NewWorkspaceService(db, broadcaster, logger)
	members := services.NewMemberService(db, broadcaster, logger)
	channels := services.NewChannelService(db, broadcaster, logger)
	conversations := services.NewConversationService(db, broadcaster, logger)
	messages := services.NewMessageService(db, broadcaster, logger)
	reactions := services.NewReactionService(db, broadcaster, logger)

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:         handlers.NewAuthHandler(db, jwtMgr, rdb, logger),
		Workspace:    handlers.NewWorkspaceHandler(workspaces),
		Member:       handlers.NewMemberHandler(members),
		Channel:      handlers.NewChannelHandler(channels),
		Conversation: handlers.NewConversationHandler(conversations),
		Message:      handlers.NewMessageHandler(messages, presence),
		Reaction:     handlers.NewReactionHandler(reactions),
		WebSocket:    handlers.NewWebSocketHandler(hub, logger),
	}, jwtMgr, rdb)

	return &Server{
		Router:      router,
		DB:          db,
		Redis:       rdb,
		Broadcaster: broadcaster,
		Hub:         hub,
		Log:         logger,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	s.Log.Info("server starting", zap.String("port", port))
	if err := s.Router.Run(":" + port); err != nil {
		s.Log.Fatal("server run error", zap.Error(err))
	}
}
