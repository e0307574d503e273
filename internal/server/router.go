package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/credfile-backend/internal/handlers"
	"github.com/yungbote/credfile-backend/internal/middleware"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	IngestHandler  *handlers.IngestHandler
	SubjectHandler *handlers.SubjectHandler
	InsightHandler *handlers.InsightHandler
	ReceiptHandler *handlers.ReceiptHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(otelgin.Middleware("credfile-backend"))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/credit-files", cfg.IngestHandler.IngestCreditFile)
		api.GET("/subjects/:id", cfg.SubjectHandler.GetSubject)
		api.GET("/subjects/:id/insights", cfg.InsightHandler.ListInsightsForSubject)
		api.GET("/subjects/:id/receipts", cfg.ReceiptHandler.ListReceiptsForSubject)
		api.GET("/receipts/:digest", cfg.ReceiptHandler.GetReceiptByDigest)
	}

	return router
}
