package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytrack/backend/ai"
	"studytrack/backend/config"
	"studytrack/backend/controllers"
	"studytrack/backend/jobs"
	"studytrack/backend/middleware"
	"studytrack/backend/models"
	"studytrack/backend/notify"
)

// Deps carries the shared singletons handed to every controller.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	AI       *ai.Client
	Jobs     *jobs.Manager
	Notifier *notify.Sender
	Log      *log.Logger
}

// SetupRoutes wires every controller and returns the automation tasks the
// scheduler should own.
func SetupRoutes(app *fiber.App, deps Deps) []jobs.Task {
	// Auth routes
	authController := controllers.NewAuthController(deps.DB, deps.Cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	authMiddleware := middleware.AuthMiddleware(deps.Cfg)

	// Plan routes
	planController := controllers.NewPlanController(deps.DB, deps.Cfg)
	app.Get("/api/plan", authMiddleware, planController.GetPlan)
	app.Post("/api/plan", authMiddleware, planController.SavePlan)

	// Schedule routes
	scheduleController := controllers.NewScheduleController(deps.DB, deps.Cfg, deps.AI, deps.Jobs, deps.Notifier, deps.Log)
	app.Get("/api/schedule", authMiddleware, scheduleController.GetDailySchedule)
	app.Post("/api/schedule", authMiddleware, scheduleController.SaveDailySchedule)
	app.Post("/api/schedule/adjust", authMiddleware, scheduleController.AdjustWithAI)

	// Dashboard routes
	dashboardController := controllers.NewDashboardController(deps.DB, deps.Cfg, deps.Log)
	app.Get("/api/dashboard", authMiddleware, dashboardController.GetDashboard)
	app.Get("/api/training/details", authMiddleware, dashboardController.GetTrainingDetails)
	app.Get("/api/history", authMiddleware, dashboardController.GetHistory)

	// Analysis routes
	analysisController := controllers.NewAnalysisController(deps.DB, deps.Cfg, deps.AI, deps.Jobs, deps.Notifier, deps.Log)
	app.Post("/api/upload", authMiddleware, analysisController.Upload)
	app.Post("/api/analyze", authMiddleware, analysisController.Analyze)
	app.Get("/api/jobs/:id", authMiddleware, analysisController.JobStatus)
	app.Post("/api/analysis/comprehensive", authMiddleware, analysisController.Comprehensive)
	app.Post("/api/analysis/dashboard", authMiddleware, analysisController.DashboardAnalysis)

	// Settings routes
	settingsController := controllers.NewSettingsController(deps.DB, deps.Cfg, deps.AI, deps.Notifier, deps.Log)
	app.Get("/api/automation", authMiddleware, settingsController.GetAutomation)
	app.Post("/api/automation", authMiddleware, settingsController.SaveAutomation)
	app.Post("/api/notify/test", authMiddleware, settingsController.TestWebhook)
	app.Post("/api/ai/test", authMiddleware, settingsController.TestAI)

	return []jobs.Task{
		{Name: models.TaskComprehensiveAnalysis, Run: analysisController.RunComprehensive},
		{Name: models.TaskDataAnalysis, Run: analysisController.RunDashboardAnalysis},
		{Name: models.TaskDailyPlan, Run: scheduleController.RunDailyPlan},
	}
}
