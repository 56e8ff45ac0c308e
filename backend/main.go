package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"studytrack/backend/ai"
	"studytrack/backend/config"
	"studytrack/backend/jobs"
	"studytrack/backend/middleware"
	"studytrack/backend/notify"
	"studytrack/backend/routes"
	"studytrack/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Shared clients
	aiClient := ai.NewClient(cfg, logger)
	notifier := notify.NewSender(cfg.WebhookURL, logger)
	manager := jobs.NewManager(logger)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Uploaded report files
	app.Static("/uploads", cfg.UploadDir)

	// Setup routes
	tasks := routes.SetupRoutes(app, routes.Deps{
		DB:       db,
		Cfg:      cfg,
		AI:       aiClient,
		Jobs:     manager,
		Notifier: notifier,
		Log:      logger,
	})

	// Daily automation
	scheduler := jobs.NewScheduler(db, tasks, logger)
	scheduler.Start()

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
