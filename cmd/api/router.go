package api

import (
	"net/http"

	authDelivery "replydraft-backend/internal/auth/delivery"
	emailDelivery "replydraft-backend/internal/email/delivery"
	emailUsecase "replydraft-backend/internal/email/usecase"
	"replydraft-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, contextUsecase emailUsecase.ContextUsecase, cfg *config.Config) {
	contextHandler := emailDelivery.NewContextHandler(contextUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Context assembly routes (protected)
		contexts := api.Group("/context")
		contexts.Use(authDelivery.AuthMiddleware(cfg))
		{
			contexts.POST("/build", contextHandler.BuildContext)
		}

		// Email routes (protected)
		emails := api.Group("/emails")
		emails.Use(authDelivery.AuthMiddleware(cfg))
		{
			emails.POST("/ingest", contextHandler.IngestEmail)
		}
	}
}
