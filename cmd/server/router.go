package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/MaheshMoholkar/slack/internal/handlers"
	"github.com/MaheshMoholkar/slack/internal/middleware"
	"github.com/MaheshMoholkar/slack/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Workspace    *handlers.WorkspaceHandler
	Member       *handlers.MemberHandler
	Channel      *handlers.ChannelHandler
	Conversation *handlers.ConversationHandler
	Message      *handlers.MessageHandler
	Reaction     *handlers.ReactionHandler
	WebSocket    *handlers.WebSocketHandler
}

func APIEndpoints(r *gin.Engine, h *Handlers, jwtMgr *auth.JWTManager, rdb *redis.Client) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(jwtMgr, rdb), h.Auth.Me)
	}

	api := r.Group("/api", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		workspaces := api.Group("/workspaces")
		{
			workspaces.POST("", h.Workspace.Create)
			workspaces.GET("", h.Workspace.List)
			workspaces.POST("/join", h.Workspace.Join)
			workspaces.GET("/:id", h.Workspace.Get)
			workspaces.PUT("/:id", h.Workspace.Update)
			workspaces.DELETE("/:id", h.Workspace.Delete)
			workspaces.POST("/:id/join-code", h.Workspace.RegenerateJoinCode)
			workspaces.GET("/:id/members", h.Workspace.Members)
		}

		channels := api.Group("/channels")
		{
			channels.POST("", h.Channel.Create)
			channels.GET("/workspace/:id", h.Channel.ListByWorkspace)
			channels.PUT("/:id", h.Channel.Update)
			channels.DELETE("/:id", h.Channel.Delete)
		}

		members := api.Group("/members")
		{
			members.POST("", h.Member.Add)
			members.GET("/:id", h.Member.Get)
			members.PUT("/:id/role", h.Member.UpdateRole)
			members.DELETE("/:id", h.Member.Remove)
		}

		conversations := api.Group("/conversations")
		{
			conversations.POST("", h.Conversation.CreateOrGet)
			conversations.GET("/workspace/:id", h.Conversation.ListByWorkspace)
			conversations.DELETE("/:id", h.Conversation.Delete)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", h.Message.Create)
			messages.POST("/typing", h.Message.NotifyTyping)
			messages.DELETE("/typing", h.Message.StopTyping)
			messages.GET("/channel/:id", h.Message.ListChannelMessages)
			messages.GET("/conversation/:id", h.Message.ListConversationMessages)
			messages.GET("/thread/:id", h.Message.ListThreadReplies)
			messages.GET("/:id", h.Message.Get)
			messages.PUT("/:id", h.Message.Update)
			messages.DELETE("/:id", h.Message.Delete)
		}

		reactions := api.Group("/reactions")
		{
			reactions.POST("", h.Reaction.Add)
			reactions.DELETE("", h.Reaction.Remove)
			reactions.GET("/message/:id", h.Reaction.ListByMessage)
		}
	}

	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), h.WebSocket.Connect)
}
