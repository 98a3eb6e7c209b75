package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewloop/pkg/logger"
	"reviewloop/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(workflowHandler *WorkflowHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("reviewloop"))

	// Покупатели приходят по QR-коду из браузера, поэтому CORS открытый
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviewloop",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Точка входа кампании и старт сессии
	campaigns := router.Group("/campaigns")
	{
		campaigns.GET("/:campaign_id", workflowHandler.GetCampaign)
		campaigns.POST("/:campaign_id/sessions", workflowHandler.StartSession)
	}

	// Переходы между шагами воркфлоу
	sessions := router.Group("/sessions")
	{
		sessions.GET("/:session_id", workflowHandler.GetSession)
		sessions.POST("/:session_id/feedback", workflowHandler.SubmitProductFeedback)
		sessions.POST("/:session_id/details", workflowHandler.SubmitCustomerDetails)
		sessions.POST("/:session_id/back", workflowHandler.StepBack)
		sessions.POST("/:session_id/review", workflowHandler.SubmitReview)
		sessions.DELETE("/:session_id", workflowHandler.AbandonSession)
	}

	return router
}
