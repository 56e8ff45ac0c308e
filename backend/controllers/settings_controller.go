package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytrack/backend/ai"
	"studytrack/backend/config"
	"studytrack/backend/models"
	"studytrack/backend/notify"
	"studytrack/backend/utils"
)

// generalSettings is the single automation row every deployment has.
const generalSettings = "general"

type SettingsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	AI       *ai.Client
	Notifier *notify.Sender
	Log      *log.Logger
}

func NewSettingsController(db *gorm.DB, cfg *config.Config, aiClient *ai.Client, notifier *notify.Sender, logger *log.Logger) *SettingsController {
	if logger == nil {
		logger = log.Default()
	}
	return &SettingsController{DB: db, Cfg: cfg, AI: aiClient, Notifier: notifier, Log: logger}
}

// GetAutomation godoc
// @Summary Get automation settings
// @Tags settings
// @Produce json
// @Router /api/automation [get]
func (sc *SettingsController) GetAutomation(c *fiber.Ctx) error {
	var settings models.AutomationSettings
	err := sc.DB.Where("task_name = ?", generalSettings).First(&settings).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "could not load settings")
		}
		settings = models.AutomationSettings{
			TaskName:        generalSettings,
			ComprehensiveAt: "22:00",
			DataAnalysisAt:  "22:00",
			DailyPlanAt:     "23:00",
		}
	}
	return c.JSON(settings)
}

type automationInput struct {
	ComprehensiveEnabled bool   `json:"comprehensive_enabled"`
	DataAnalysisEnabled  bool   `json:"data_analysis_enabled"`
	DailyPlanEnabled     bool   `json:"daily_plan_enabled"`
	ComprehensiveAt      string `json:"comprehensive_at"`
	DataAnalysisAt       string `json:"data_analysis_at"`
	DailyPlanAt          string `json:"daily_plan_at"`
}

// SaveAutomation godoc
// @Summary Save automation settings
// @Tags settings
// @Accept json
// @Produce json
// @Router /api/automation [post]
func (sc *SettingsController) SaveAutomation(c *fiber.Ctx) error {
	var input automationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	for _, at := range []string{input.ComprehensiveAt, input.DataAnalysisAt, input.DailyPlanAt} {
		if at == "" {
			continue
		}
		if _, err := time.Parse("15:04", at); err != nil {
			return utils.BadRequest(c, "execution times must be HH:MM")
		}
	}

	var settings models.AutomationSettings
	err := sc.DB.Where("task_name = ?", generalSettings).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "could not load settings")
	}
	settings.TaskName = generalSettings
	settings.ComprehensiveEnabled = input.ComprehensiveEnabled
	settings.DataAnalysisEnabled = input.DataAnalysisEnabled
	settings.DailyPlanEnabled = input.DailyPlanEnabled
	if input.ComprehensiveAt != "" {
		settings.ComprehensiveAt = input.ComprehensiveAt
	}
	if input.DataAnalysisAt != "" {
		settings.DataAnalysisAt = input.DataAnalysisAt
	}
	if input.DailyPlanAt != "" {
		settings.DailyPlanAt = input.DailyPlanAt
	}

	if err := sc.DB.Save(&settings).Error; err != nil {
		return utils.InternalServerError(c, "could not save settings")
	}
	return c.JSON(fiber.Map{"status": "success", "settings": settings})
}

// TestWebhook godoc
// @Summary Send a webhook test message
// @Tags settings
// @Produce json
// @Router /api/notify/test [post]
func (sc *SettingsController) TestWebhook(c *fiber.Ctx) error {
	if err := sc.Notifier.TestPush(); err != nil {
		if errors.Is(err, notify.ErrNoWebhook) {
			return utils.BadRequest(c, "webhook URL is not configured")
		}
		return utils.InternalServerError(c, err.Error())
	}
	return utils.Message(c, "测试消息已发送")
}

// TestAI godoc
// @Summary Check AI connectivity
// @Description Sends a one-word prompt to verify the API key and model
// @Tags settings
// @Produce json
// @Router /api/ai/test [post]
func (sc *SettingsController) TestAI(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, err := sc.AI.GenerateContent(ctx, []ai.Part{{Text: "请回复\"连接成功\"。"}}, nil)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return utils.BadRequest(c, "AI API is not configured")
		}
		return utils.InternalServerError(c, err.Error())
	}
	return c.JSON(fiber.Map{"status": "success", "reply": text})
}
