package main

import (
	"context"
	"log"
	"parts_market/internal/broadcast"
	"parts_market/internal/config"
	"parts_market/internal/database"
	"parts_market/internal/handlers"
	"parts_market/internal/redis"
	"parts_market/internal/repository"
	"parts_market/internal/services"
	"parts_market/pkg/push"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis (bid broadcast transport)
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize push gateway client
	pushClient := push.NewClient(cfg.PushGatewayURL, cfg.PushUsername, cfg.PushPassword)

	// Broadcast hub, fed from the Redis subscription
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := broadcast.NewHub()
	go hub.Run(ctx)

	messages, err := redisClient.Subscribe(ctx)
	if err != nil {
		log.Fatal("Failed to subscribe to bid events:", err)
	}
	go func() {
		for msg := range messages {
			hub.Broadcast(msg.RFQID, msg.Payload)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	rfqRepo := repository.NewRFQRepository(db)
	bidRepo := repository.NewBidRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	notificationService := services.NewNotificationService(notificationRepo, bidRepo, userRepo, pushClient)
	rfqService := services.NewRFQService(db, rfqRepo, bidRepo, notificationService)
	bidService := services.NewBidService(rfqRepo, bidRepo, redisClient)
	awardService := services.NewAwardService(db)
	orderService := services.NewOrderService(orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	rfqHandler := handlers.NewRFQHandler(rfqService, awardService)
	bidHandler := handlers.NewBidHandler(bidService)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	wsHandler := handlers.NewWSHandler(hub, cfg.WatcherSendDepth)

	// Setup routes
	router := gin.Default()

	router.POST("/api/auth/login", authHandler.Login)

	// Real-time bid watch channel
	router.GET("/ws/rfqs/:id", wsHandler.Watch)

	api := router.Group("/api")
	api.Use(handlers.AuthRequired(userService))
	{
		api.GET("/auth/me", authHandler.Me)

		api.GET("/rfqs", rfqHandler.List)
		api.POST("/rfqs", rfqHandler.Create)
		api.GET("/rfqs/:id", rfqHandler.Get)
		api.PATCH("/rfqs/:id", rfqHandler.Update)
		api.DELETE("/rfqs/:id", rfqHandler.Delete)
		api.POST("/rfqs/:id/submit", rfqHandler.Submit)
		api.POST("/rfqs/:id/award", rfqHandler.Award)
		api.DELETE("/rfq-items/:id", rfqHandler.DeleteItem)
		api.GET("/feed", rfqHandler.Feed)

		api.POST("/bids", bidHandler.Create)
		api.GET("/bids", bidHandler.List)

		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.POST("/orders/:id/confirm", orderHandler.Confirm)
		api.POST("/orders/:id/mark_ready", orderHandler.MarkReady)
		api.POST("/orders/:id/confirm_delivery", orderHandler.ConfirmDelivery)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
