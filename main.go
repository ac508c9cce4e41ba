package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"consult-chat/internal/config"
	"consult-chat/internal/db"
	"consult-chat/internal/handlers"
	"consult-chat/internal/identity"
	"consult-chat/internal/logging"
	"consult-chat/internal/middleware"
	"consult-chat/internal/observability"
	"consult-chat/internal/rabbitmq"
	"consult-chat/internal/repositories"
	"consult-chat/internal/service"
	"consult-chat/internal/telemetry"
)

const serviceName = "consult-chat"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.LogLevel, cfg.Environment)

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up tracing")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	database, err := db.Connect(cfg.DatabaseDSN, logging.Sub(log, "db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer database.Close()

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, logging.Sub(log, "rabbitmq"))
	defer publisher.Close()
	audit := telemetry.NewEmitter(publisher, serviceName, cfg.Environment, logging.Sub(log, "audit"))

	gateway := identity.NewClient(cfg.AuthServiceURL, cfg.AuthTimeout)

	sessionRepo := repositories.NewSessionRepo(database)
	messageRepo := repositories.NewMessageRepo(database)

	sessionService := service.NewSessionService(sessionRepo, gateway, audit, logging.Sub(log, "sessions"))
	chatService := service.NewChatService(sessionRepo, messageRepo, gateway, audit, logging.Sub(log, "chat"))

	sessionHandler := handlers.NewSessionHandler(sessionService)
	chatHandler := handlers.NewChatHandler(chatService)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.BearerToken()
	router.POST("/sessions", auth, sessionHandler.Create)
	router.GET("/sessions", auth, sessionHandler.List)
	router.POST("/sessions/:session_id/messages", auth, chatHandler.Send)
	router.GET("/sessions/:session_id/messages", auth, chatHandler.Fetch)
	router.PUT("/messages/:message_id", auth, chatHandler.Edit)
	router.DELETE("/messages/:message_id", auth, chatHandler.Delete)

	log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("starting chat service")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
