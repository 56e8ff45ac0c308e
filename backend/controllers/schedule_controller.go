package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"studytrack/backend/ai"
	"studytrack/backend/config"
	"studytrack/backend/jobs"
	"studytrack/backend/models"
	"studytrack/backend/notify"
	"studytrack/backend/services"
	"studytrack/backend/utils"
)

// adjustmentDays is how many consecutive days of context the AI sees and
// may rewrite, starting at the requested date.
const adjustmentDays = 3

type ScheduleController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	AI       *ai.Client
	Jobs     *jobs.Manager
	Notifier *notify.Sender
	Log      *log.Logger
}

func NewScheduleController(db *gorm.DB, cfg *config.Config, aiClient *ai.Client, manager *jobs.Manager, notifier *notify.Sender, logger *log.Logger) *ScheduleController {
	if logger == nil {
		logger = log.Default()
	}
	return &ScheduleController{DB: db, Cfg: cfg, AI: aiClient, Jobs: manager, Notifier: notifier, Log: logger}
}

func defaultScheduleItems() []models.ScheduleItem {
	return []models.ScheduleItem{
		{StartTime: "07:00", EndTime: "07:30", Activity: "特殊-特殊", Details: "起床和洗漱"},
		{StartTime: "09:00", EndTime: "10:30", Activity: "资料分析-资料", Details: "专项训练"},
		{StartTime: "11:00", EndTime: "12:00", Activity: "言语理解-言语", Details: "专项训练"},
		{StartTime: "14:30", EndTime: "16:00", Activity: "特殊-特殊", Details: "自主安排学习"},
	}
}

// GetDailySchedule godoc
// @Summary Get the schedule for a day
// @Description Returns the day's schedule, creating a default schedule and
// @Description matching study plan when none exists yet
// @Tags schedule
// @Produce json
// @Router /api/schedule [get]
func (sc *ScheduleController) GetDailySchedule(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		return utils.BadRequest(c, "date parameter is required")
	}

	var schedule models.DailySchedule
	err := sc.DB.Preload("Items").Where("schedule_date = ?", date).First(&schedule).Error
	if err == nil {
		schedule.Items = services.SortItems(schedule.Items)
		return c.JSON(schedule)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "could not load schedule")
	}

	// First visit of the day: seed a default schedule and derive a plan
	// from it so the dashboard has goals to track.
	items := defaultScheduleItems()
	created, err := services.ReplaceScheduleItems(sc.DB, date, items)
	if err != nil {
		return utils.InternalServerError(c, "could not create default schedule")
	}
	var plan models.StudyPlan
	if err := sc.DB.Where("plan_date = ?", date).First(&plan).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.InternalServerError(c, "could not load plan")
		}
		if err := services.SynchronizePlanFromSchedule(sc.DB, date, items); err != nil {
			return utils.InternalServerError(c, "could not create default plan")
		}
	}

	created.Items = services.SortItems(created.Items)
	return c.JSON(created)
}

type saveScheduleInput struct {
	ScheduleDate string                `json:"schedule_date"`
	Items        []models.ScheduleItem `json:"schedule_items"`
}

// SaveDailySchedule godoc
// @Summary Replace the schedule for a day
// @Description Overwrites the day's schedule and re-syncs the study plan.
// @Description Mock exams are rejected outside weekends.
// @Tags schedule
// @Accept json
// @Produce json
// @Router /api/schedule [post]
func (sc *ScheduleController) SaveDailySchedule(c *fiber.Ctx) error {
	var input saveScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.ScheduleDate == "" || len(input.Items) == 0 {
		return utils.BadRequest(c, "date and schedule items are required")
	}

	day, err := time.Parse("2006-01-02", input.ScheduleDate)
	if err != nil {
		return utils.BadRequest(c, "invalid date format, use YYYY-MM-DD")
	}
	if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
		for _, item := range input.Items {
			if strings.Contains(item.Activity, models.CategoryMockExam) {
				return utils.BadRequest(c, fmt.Sprintf("'%s' 只能安排在周末。", models.CategoryMockExam))
			}
		}
	}

	schedule, err := services.ReplaceScheduleItems(sc.DB, input.ScheduleDate, input.Items)
	if err != nil {
		return utils.InternalServerError(c, "could not save schedule")
	}
	if err := services.SynchronizePlanFromSchedule(sc.DB, input.ScheduleDate, input.Items); err != nil {
		return utils.InternalServerError(c, "could not synchronize plan")
	}

	schedule.Items = services.SortItems(schedule.Items)
	return c.JSON(fiber.Map{"status": "success", "schedule": schedule})
}

type adjustInput struct {
	Date    string `json:"date"`
	Request string `json:"request"`
}

// AdjustWithAI godoc
// @Summary Rework the plan with AI
// @Description Starts a background job that lets the AI rewrite up to
// @Description three days of schedule and goals per the user's request
// @Tags schedule
// @Accept json
// @Produce json
// @Router /api/schedule/adjust [post]
func (sc *ScheduleController) AdjustWithAI(c *fiber.Ctx) error {
	var input adjustInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Date == "" || input.Request == "" {
		return utils.BadRequest(c, "date and request are required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return utils.BadRequest(c, "invalid date format, use YYYY-MM-DD")
	}

	jobID := sc.Jobs.Enqueue(func() (interface{}, error) {
		result, err := sc.adjustAndApply(input.Date, input.Request)
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}

// adjustAndApply runs the full adjustment flow: build multi-day context,
// ask the model, persist whatever days it rewrote.
func (sc *ScheduleController) adjustAndApply(date, userRequest string) (*ai.AdjustmentResult, error) {
	adjCtx, err := sc.buildAdjustmentContext(date, userRequest)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	result, err := sc.AI.AdjustSchedule(ctx, adjCtx)
	if err != nil {
		return nil, err
	}

	if err := sc.applyAdjustment(result); err != nil {
		return nil, err
	}
	return result, nil
}

func (sc *ScheduleController) buildAdjustmentContext(date, userRequest string) (ai.AdjustmentContext, error) {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ai.AdjustmentContext{}, fmt.Errorf("invalid date: %w", err)
	}

	multiDay := make(map[string]ai.DayContext, adjustmentDays)
	for i := 0; i < adjustmentDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")

		var plan models.StudyPlan
		goals := []models.Goal{}
		err := sc.DB.Preload("Goals", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).Where("plan_date = ?", day).First(&plan).Error
		if err == nil {
			goals = plan.Goals
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ai.AdjustmentContext{}, err
		}

		var schedule models.DailySchedule
		items := []models.ScheduleItem{}
		err = sc.DB.Preload("Items").Where("schedule_date = ?", day).First(&schedule).Error
		if err == nil {
			items = services.SortItems(schedule.Items)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return ai.AdjustmentContext{}, err
		}

		multiDay[day] = ai.DayContext{StudyGoals: goals, DetailedSchedule: items}
	}

	history, err := services.NewRecordStore(sc.DB).RecentHistory(7)
	if err != nil {
		sc.Log.Printf("adjustment: could not load history: %v", err)
		history = nil
	}

	return ai.AdjustmentContext{
		Date:        date,
		MultiDay:    multiDay,
		History:     history,
		UserRequest: userRequest,
	}, nil
}

func (sc *ScheduleController) applyAdjustment(result *ai.AdjustmentResult) error {
	for day, items := range result.UpdatedSchedules {
		if _, err := services.ReplaceScheduleItems(sc.DB, day, items); err != nil {
			return fmt.Errorf("could not save adjusted schedule for %s: %w", day, err)
		}
		if goals, ok := result.UpdatedGoals[day]; ok && len(goals) > 0 {
			if _, err := services.ReplacePlanGoals(sc.DB, day, goals); err != nil {
				return fmt.Errorf("could not save adjusted plan for %s: %w", day, err)
			}
		} else {
			if err := services.SynchronizePlanFromSchedule(sc.DB, day, items); err != nil {
				return fmt.Errorf("could not sync adjusted plan for %s: %w", day, err)
			}
		}
	}
	return nil
}

// RunDailyPlan is the automation entry fired by the scheduler: it asks
// the AI to lay out tomorrow, applies the result, and pushes the
// suggestion to the webhook.
func (sc *ScheduleController) RunDailyPlan() error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	result, err := sc.adjustAndApply(tomorrow, "请根据我最近的练习表现，为明天安排一份合理的学习计划。")
	if err != nil {
		return err
	}

	message := fmt.Sprintf("### 明日学习计划已生成\n\n**日期**: %s\n\n%s", tomorrow, result.Suggestion)
	if err := sc.Notifier.SendMarkdown(message); err != nil {
		sc.Log.Printf("daily plan: webhook push failed: %v", err)
	}
	return nil
}
