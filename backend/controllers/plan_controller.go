package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytrack/backend/config"
	"studytrack/backend/models"
	"studytrack/backend/services"
	"studytrack/backend/utils"
)

type PlanController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewPlanController(db *gorm.DB, cfg *config.Config) *PlanController {
	return &PlanController{DB: db, Cfg: cfg, Validate: validator.New()}
}

// GetPlan godoc
// @Summary Get the study plan for a day
// @Description Returns the goal list for the given date, or an empty plan
// @Tags plan
// @Produce json
// @Router /api/plan [get]
func (pc *PlanController) GetPlan(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return utils.BadRequest(c, "date parameter is required")
	}

	var plan models.StudyPlan
	err := pc.DB.Preload("Goals", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("plan_date = ?", date).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"plan_date": date, "goals": []models.Goal{}})
		}
		return utils.InternalServerError(c, "could not load plan")
	}

	return c.JSON(plan)
}

type savePlanInput struct {
	Date  string        `json:"date" validate:"required"`
	Goals []models.Goal `json:"goals" validate:"required"`
}

// SavePlan godoc
// @Summary Replace the study plan for a day
// @Description Overwrites the day's goal list, keeping submission order
// @Tags plan
// @Accept json
// @Produce json
// @Router /api/plan [post]
func (pc *PlanController) SavePlan(c *fiber.Ctx) error {
	var input savePlanInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if err := pc.Validate.Struct(input); err != nil {
		return utils.BadRequest(c, "date and goals are required")
	}

	plan, err := services.ReplacePlanGoals(pc.DB, input.Date, input.Goals)
	if err != nil {
		return utils.InternalServerError(c, "could not save plan")
	}

	return c.JSON(fiber.Map{"status": "success", "plan": plan})
}
