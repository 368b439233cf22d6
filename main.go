package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Riwantoro/Toro-Chat/internal/config"
	"github.com/Riwantoro/Toro-Chat/internal/handlers"
	"github.com/Riwantoro/Toro-Chat/internal/middleware"
	"github.com/Riwantoro/Toro-Chat/internal/observability"
	"github.com/Riwantoro/Toro-Chat/internal/rabbitmq"
	"github.com/Riwantoro/Toro-Chat/internal/services"
	"github.com/Riwantoro/Toro-Chat/internal/store"
	"github.com/Riwantoro/Toro-Chat/internal/telemetry"
	"github.com/Riwantoro/Toro-Chat/internal/ws"
)

const serviceName = "torochat"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracing, err := telemetry.SetupTracing(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}()

	if publisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange); err != nil {
		log.Printf("event publisher disabled: %v", err)
	} else {
		observability.SetPublisher(publisher)
		defer publisher.Close()
	}

	auditPublisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	defer auditPublisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(auditPublisher))
	audit := telemetry.NewAuditEmitter(auditPublisher, cfg.AuditRoutingKey, serviceName, cfg.Environment)

	st := store.New()

	authService := services.NewAuthService(st, cfg.JWTSecret, cfg.JWTExpiresIn)
	if err := authService.BootstrapAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin: %v", err)
	}
	chatService := services.NewChatService(st)
	messageService := services.NewMessageService(st, chatService)
	presenceService := services.NewPresenceService(st)

	hub := ws.NewHub()
	gateway := ws.NewGateway(hub, authService, chatService, messageService, presenceService)

	authHandler := handlers.NewAuthHandler(authService, audit)
	chatHandler := handlers.NewChatHandler(chatService, audit)
	messageHandler := handlers.NewMessageHandler(messageService, hub)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	requireAuth := middleware.RequireAuth(authService)
	requireAdmin := middleware.RequireAdmin()

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/auth/admin/pending", requireAuth, requireAdmin, authHandler.ListPending)
	router.POST("/auth/admin/approve", requireAuth, requireAdmin, authHandler.Approve)

	router.GET("/users", requireAuth, authHandler.ListUsers)

	router.GET("/chats", requireAuth, chatHandler.ListChats)
	router.POST("/chats/direct", requireAuth, chatHandler.CreateDirect)
	router.POST("/chats/group", requireAuth, chatHandler.CreateGroup)

	router.GET("/messages/:chat_id", requireAuth, messageHandler.ListMessages)
	router.POST("/messages/:chat_id", requireAuth, messageHandler.SendMessage)
	router.DELETE("/messages/:message_id", requireAuth, messageHandler.DeleteMessage)

	router.GET("/ws", gateway.Handle)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDebugRoutes(router, audit, cfg.DebugRoutes)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
