package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/config"
	"github.com/lammatna/lammatna-backend/internal/handler"
	"github.com/lammatna/lammatna-backend/internal/middleware"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/service"
	"github.com/lammatna/lammatna-backend/internal/session"
	"github.com/lammatna/lammatna-backend/pkg/email"
	"github.com/lammatna/lammatna-backend/pkg/qrcode"
	"github.com/lammatna/lammatna-backend/pkg/store"
	"github.com/lammatna/lammatna-backend/pkg/utils"
)

func main() {
	// Load .env; a missing file is fine in production.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Persistent store
	kv, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		zapLogger.Fatal("failed to open store", zap.Error(err))
	}
	defer kv.Close()

	// Repositories
	userRepo := repository.NewUserRepository(kv)
	gatheringRepo := repository.NewGatheringRepository(kv)

	// Session state, restored from the persisted pointer
	sessions := session.NewManager(kv, cfg.SessionTimeout)

	// Services
	authService := service.NewAuthService(userRepo, sessions, zapLogger)
	gatheringService := service.NewGatheringService(gatheringRepo, zapLogger)
	taskService := service.NewTaskService(gatheringRepo, zapLogger)

	// Reminder notification sinks
	notifiers := []service.Notifier{service.LogNotifier{Logger: zapLogger}}
	if cfg.Resend.APIKey != "" {
		mailer := email.NewEmailService(cfg.Resend.APIKey, cfg.Resend.From, cfg.Resend.FromName, zapLogger)
		notifiers = append(notifiers, service.EmailNotifier{Mailer: mailer})
	}
	reminderService := service.NewReminderService(kv, gatheringRepo, userRepo, sessions, notifiers, zapLogger)

	if cfg.SeedSampleData {
		if err := seedSampleData(userRepo, gatheringService, zapLogger); err != nil {
			zapLogger.Warn("sample data seed failed", zap.Error(err))
		}
	}

	// QR codes point at the join-by-link URL
	qrService := qrcode.NewQRService(cfg.PublicBaseURL + "/api/gatherings?joincode=")

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(authService, userRepo, validator)
	gatheringHandler := handler.NewGatheringHandler(gatheringService, qrService, validator, cfg.PublicBaseURL)
	taskHandler := handler.NewTaskHandler(taskService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(logger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	api.Use(middleware.SessionAuth(sessions))
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)

		gatherings := api.Group("/gatherings")
		gatherings.Post("/", gatheringHandler.CreateGathering)
		gatherings.Get("/", gatheringHandler.ListGatherings)
		gatherings.Post("/join", gatheringHandler.JoinByCode)
		gatherings.Get("/code/:code", gatheringHandler.GetGatheringByCode)
		gatherings.Get("/:id", gatheringHandler.GetGathering)
		gatherings.Put("/:id", gatheringHandler.UpdateGathering)
		gatherings.Delete("/:id", gatheringHandler.DeleteGathering)
		gatherings.Post("/:id/join", gatheringHandler.JoinGathering)
		gatherings.Post("/:id/leave", gatheringHandler.LeaveGathering)
		gatherings.Get("/:id/qrcode", gatheringHandler.GetQRCode)

		gatherings.Post("/:id/tasks", taskHandler.AddTask)
		gatherings.Put("/:id/tasks/:taskId", taskHandler.EditTask)
		gatherings.Post("/:id/tasks/:taskId/toggle", taskHandler.ToggleTask)
		gatherings.Delete("/:id/tasks/:taskId", taskHandler.DeleteTask)
	}

	// Reminder ticker: one check at startup, then every minute.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reminderService.Run(ctx, service.DefaultCheckInterval)

	zapLogger.Fatal("server stopped", zap.Error(app.Listen(":"+cfg.Port)))
}
