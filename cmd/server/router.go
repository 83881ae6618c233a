package server

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/geoguess/internal/handlers"
	"github.com/thereayou/geoguess/internal/middleware"
	"github.com/thereayou/geoguess/pkg/auth"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Action  *handlers.ActionHandler
	Feed    *handlers.WebSocketHandler
	Uploads string // каталог для статики; пусто при хранении в S3
}

func APIEndpoints(r *gin.Engine, jwtMgr *auth.JWTManager, h Handlers) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/password/reset", h.Auth.RequestPasswordReset)
		authGroup.POST("/password/confirm", middleware.ResetTokenMiddleware(jwtMgr), h.Auth.ConfirmPasswordReset)
	}

	// API endpoints
	api := r.Group("/api/v1", middleware.AuthMiddleware(jwtMgr))
	{
		users := api.Group("/users")
		{
			users.GET("/search", h.User.SearchUsers)

			me := users.Group("/me", middleware.RequireUser())
			me.GET("", h.User.GetMe)
			me.PUT("", h.User.UpdateMe)
			me.PUT("/password", h.User.ChangePassword)
			me.POST("/avatar", h.User.UploadAvatar)
			me.DELETE("/avatar", h.User.RemoveAvatar)
		}

		actions := api.Group("/actions")
		{
			actions.POST("", middleware.RequireUser(), h.Action.RecordAction)
			actions.GET("", middleware.RequireAdmin(), h.Action.ListActions)
			actions.DELETE("/:id", middleware.RequireAdmin(), h.Action.RemoveAction)
		}
	}

	// WebSocket
	r.GET("/ws/actions", middleware.WSAuthMiddleware(jwtMgr), middleware.RequireAdmin(), h.Feed.HandleActionFeed)

	if h.Uploads != "" {
		r.Static("/uploads", h.Uploads)
	}
}
