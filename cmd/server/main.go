package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/loftchat/loftchat-backend/internal/cache"
	"github.com/loftchat/loftchat-backend/internal/handlers"
	"github.com/loftchat/loftchat-backend/internal/middleware"
	"github.com/loftchat/loftchat-backend/internal/realtime"
	"github.com/loftchat/loftchat-backend/internal/repository"
	"github.com/loftchat/loftchat-backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	app := fiber.New(fiber.Config{
		AppName:   "LoftChat Backend",
		BodyLimit: 4 * 1024 * 1024, // 4MB
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis (cache + push transport)
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache or realtime delivery.", err)
		redisCache = nil
	} else {
		log.Println("Redis connected successfully")
	}

	roomCache := cache.NewRoomCache(redisCache)

	// Realtime fan-out: nil publisher degrades to quiet non-delivery.
	var publisher realtime.Publisher
	var gateway *realtime.Gateway
	if redisCache != nil {
		publisher = realtime.NewRedisPublisher(redisCache.Client())
		gateway = realtime.NewGateway(redisCache.Client())
	}
	dispatcher := realtime.NewDispatcher(publisher)

	// Initialize repositories
	roomRepo := repository.NewRoomRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	accessService := service.NewAccessService(memberRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, memberRepo)
	readStateService := service.NewReadStateService(roomRepo, memberRepo, messageRepo)
	categoryService := service.NewCategoryService(categoryRepo, memberRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	roomService := service.NewRoomService(roomRepo, memberRepo)

	// Initialize handlers
	messageHandler := handlers.NewMessageHandler(messageService, readStateService, notificationService, roomService, accessService, roomCache, dispatcher)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	roomHandler := handlers.NewRoomHandler(roomService, notificationService, accessService, roomCache, dispatcher)

	// Protected routes. The auth stack is mounted per prefix so public
	// routes (health, the ws upgrade stack) are never swept into it.
	messages := app.Group("/messages",
		middleware.OriginAllowed(),
		middleware.AuthRequired(),
		limiter.New(limiter.Config{
			Max:        120,
			Expiration: time.Minute,
		}))
	messages.Get("/", messageHandler.GetMessages)
	messages.Post("/send", messageHandler.SendMessage)
	messages.Patch("/edit", messageHandler.EditMessage)
	messages.Delete("/delete", messageHandler.DeleteMessage)
	messages.Get("/unread", messageHandler.GetUnreadCount)
	messages.Post("/like", messageHandler.LikeMessage)

	chat := app.Group("/chat", middleware.OriginAllowed(), middleware.AuthRequired())
	chat.Post("/read", messageHandler.MarkRead)

	category := app.Group("/category", middleware.OriginAllowed(), middleware.AuthRequired())
	category.Post("/", categoryHandler.CreateCategory)
	category.Get("/", categoryHandler.ListCategories)
	category.Post("/sort", categoryHandler.SortCategory)
	category.Post("/rename", categoryHandler.RenameCategory)
	category.Post("/delete", categoryHandler.DeleteCategory)
	category.Post("/member-sort", categoryHandler.SortMember)

	notifications := app.Group("/notifications", middleware.OriginAllowed(), middleware.AuthRequired())
	notifications.Get("/", notificationHandler.GetNotifications)
	notifications.Post("/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)

	rooms := app.Group("/rooms", middleware.OriginAllowed(), middleware.AuthRequired())
	rooms.Post("/", roomHandler.CreateRoom)
	rooms.Post("/invite", roomHandler.InviteMember)
	rooms.Patch("/info", roomHandler.UpdateRoomInfo)
	rooms.Post("/leave", roomHandler.LeaveRoom)

	// WebSocket route (websocket upgrade needs special handling)
	if gateway != nil {
		app.Use(
			"/ws",
			middleware.OriginAllowed(),
			middleware.AuthRequired(),
			func(c *fiber.Ctx) error {
				if websocket.IsWebSocketUpgrade(c) {
					return c.Next()
				}
				return fiber.ErrUpgradeRequired
			},
		)
		app.Get("/ws", websocket.New(gateway.Handle))
	}

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "LoftChat is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
