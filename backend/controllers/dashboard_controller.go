package controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytrack/backend/config"
	"studytrack/backend/models"
	"studytrack/backend/services"
	"studytrack/backend/utils"
)

type DashboardController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Reconciler *services.Reconciler
	Store      *services.RecordStore
	Log        *log.Logger
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, logger *log.Logger) *DashboardController {
	if logger == nil {
		logger = log.Default()
	}
	return &DashboardController{
		DB:         db,
		Cfg:        cfg,
		Reconciler: services.NewReconciler(logger),
		Store:      services.NewRecordStore(db),
		Log:        logger,
	}
}

// loadDay fetches the plan, schedule and records snapshot one
// reconciliation pass works on.
func (dc *DashboardController) loadDay(date string) ([]models.Goal, []models.ScheduleItem, []models.SubmissionRecord, error) {
	var plan models.StudyPlan
	goals := []models.Goal{}
	err := dc.DB.Preload("Goals", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("plan_date = ?", date).First(&plan).Error
	if err == nil {
		goals = plan.Goals
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}

	var schedule models.DailySchedule
	items := []models.ScheduleItem{}
	err = dc.DB.Preload("Items").Where("schedule_date = ?", date).First(&schedule).Error
	if err == nil {
		items = schedule.Items
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, err
	}

	records, err := dc.Store.ForDate(date)
	if err != nil {
		return nil, nil, nil, err
	}
	return goals, items, records, nil
}

// GetDashboard godoc
// @Summary Get the day's progress dashboard
// @Description Reconciles the day's goals against submitted records and
// @Description returns per-goal and aggregate progress
// @Tags dashboard
// @Produce json
// @Router /api/dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return utils.BadRequest(c, "date parameter is required")
	}

	goals, items, records, err := dc.loadDay(date)
	if err != nil {
		return utils.InternalServerError(c, "could not load dashboard data")
	}

	progress := dc.Reconciler.Dashboard(date, goals, items, records)
	return c.JSON(fiber.Map{
		"date":           date,
		"total_answered": progress.TotalAnswered,
		"total_target":   progress.TotalTarget,
		"percentage":     progress.Percentage,
		"goals_progress": progress.GoalsProgress,
	})
}

// GetTrainingDetails godoc
// @Summary Get one goal's progress
// @Description Returns a single goal's target and attributed progress,
// @Description addressed by its position in the day's plan
// @Tags dashboard
// @Produce json
// @Router /api/training/details [get]
func (dc *DashboardController) GetTrainingDetails(c *fiber.Ctx) error {
	date := c.Query("date")
	goalIDStr := c.Query("goal_id")
	if date == "" || goalIDStr == "" {
		return utils.BadRequest(c, "date and goal_id parameters are required")
	}
	goalID, err := strconv.Atoi(goalIDStr)
	if err != nil {
		return utils.BadRequest(c, "goal_id must be an integer")
	}

	goals, items, records, err := dc.loadDay(date)
	if err != nil {
		return utils.InternalServerError(c, "could not load goal data")
	}

	result, err := dc.Reconciler.GoalDetails(date, goalID, goals, items, records)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			return utils.NotFound(c, "goal not found")
		}
		return utils.InternalServerError(c, "could not compute goal details")
	}

	return c.JSON(fiber.Map{
		"goal":     result.Goal,
		"progress": result.Progress,
	})
}

// GetHistory godoc
// @Summary Get submission history
// @Description With type and date, returns that day's records for the
// @Description category, optionally narrowed to one goal's time window.
// @Description Without filters, returns the full history newest first.
// @Tags dashboard
// @Produce json
// @Router /api/history [get]
func (dc *DashboardController) GetHistory(c *fiber.Ctx) error {
	practiceType := c.Query("type")
	date := c.Query("date")
	goalIDStr := c.Query("goal_id")

	if practiceType == "" || date == "" {
		records, err := dc.Store.AllHistory()
		if err != nil {
			return utils.InternalServerError(c, "could not load history")
		}
		return c.JSON(records)
	}

	records, err := dc.Store.ForCategoryDate(practiceType, date)
	if err != nil {
		return utils.InternalServerError(c, "could not load history")
	}

	if goalIDStr != "" {
		goalID, convErr := strconv.Atoi(goalIDStr)
		if convErr == nil {
			var schedule models.DailySchedule
			items := []models.ScheduleItem{}
			err = dc.DB.Preload("Items").Where("schedule_date = ?", date).First(&schedule).Error
			if err == nil {
				items = services.SortItems(schedule.Items)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.InternalServerError(c, "could not load schedule")
			}
			records = dc.Reconciler.RecordsInGoalWindow(date, goalID, items, records)
		}
	}

	return c.JSON(records)
}
