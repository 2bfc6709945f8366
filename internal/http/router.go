// README: HTTP route registration for the trip planning API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripzen/internal/http/handlers"
	"tripzen/internal/http/middleware"
	"tripzen/internal/infra"
	"tripzen/internal/modules/chat"
	"tripzen/internal/modules/quota"
	"tripzen/internal/modules/trip"
)

func NewRouter(
	verifier infra.TokenVerifier,
	tripService *trip.Service,
	chatService *chat.Service,
	quotaService *quota.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(verifier))

	tripHandler := handlers.NewTripHandler(tripService)
	api.POST("/trips", tripHandler.Create)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.DELETE("/trips/:id", tripHandler.Delete)
	api.POST("/trips/:id/suggestion", tripHandler.GenerateSuggestion)

	chatHandler := handlers.NewChatHandler(tripService, chatService)
	api.GET("/trips/:id/chat", chatHandler.History)
	api.POST("/trips/:id/chat", chatHandler.Send)

	quotaHandler := handlers.NewQuotaHandler(quotaService)
	api.GET("/ai/quota", quotaHandler.Remaining)

	return r
}
