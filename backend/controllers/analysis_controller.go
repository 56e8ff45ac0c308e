package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studytrack/backend/ai"
	"studytrack/backend/config"
	"studytrack/backend/jobs"
	"studytrack/backend/models"
	"studytrack/backend/notify"
	"studytrack/backend/services"
	"studytrack/backend/utils"
)

var allowedUploadExts = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

type AnalysisController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	AI         *ai.Client
	Jobs       *jobs.Manager
	Notifier   *notify.Sender
	Ingestor   *services.Ingestor
	Reconciler *services.Reconciler
	Store      *services.RecordStore
	Log        *log.Logger
}

func NewAnalysisController(db *gorm.DB, cfg *config.Config, aiClient *ai.Client, manager *jobs.Manager, notifier *notify.Sender, logger *log.Logger) *AnalysisController {
	if logger == nil {
		logger = log.Default()
	}
	store := services.NewRecordStore(db)
	return &AnalysisController{
		DB:         db,
		Cfg:        cfg,
		AI:         aiClient,
		Jobs:       manager,
		Notifier:   notifier,
		Ingestor:   services.NewIngestor(store, logger),
		Reconciler: services.NewReconciler(logger),
		Store:      store,
		Log:        logger,
	}
}

// Upload godoc
// @Summary Upload exercise report files
// @Description Stores PDF or image reports and returns their server-side
// @Description filenames for a later analyze call
// @Tags analysis
// @Accept mpfd
// @Produce json
// @Router /api/upload [post]
func (ac *AnalysisController) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return utils.BadRequest(c, "multipart form required")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return utils.BadRequest(c, "no files provided")
	}

	if err := os.MkdirAll(ac.Cfg.UploadDir, 0o755); err != nil {
		return utils.InternalServerError(c, "could not prepare upload directory")
	}

	saved := make([]string, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedUploadExts[ext] {
			return utils.BadRequest(c, fmt.Sprintf("unsupported file type: %s", ext))
		}
		name := uuid.NewString() + ext
		if err := c.SaveFile(file, filepath.Join(ac.Cfg.UploadDir, name)); err != nil {
			return utils.InternalServerError(c, "could not save file")
		}
		saved = append(saved, name)
	}

	return c.JSON(fiber.Map{"status": "success", "filenames": saved})
}

type analyzeInput struct {
	Filename string `json:"filename"`
	Category string `json:"category"`
	Date     string `json:"date"`
	GoalID   *int   `json:"goal_id"`
}

// Analyze godoc
// @Summary Analyze an uploaded report
// @Description Starts a background job that extracts metrics from the
// @Description report, stores the submission record, and pushes a result
// @Description card to the webhook
// @Tags analysis
// @Accept json
// @Produce json
// @Router /api/analyze [post]
func (ac *AnalysisController) Analyze(c *fiber.Ctx) error {
	var input analyzeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if input.Filename == "" {
		return utils.BadRequest(c, "filename is required")
	}
	// Reject traversal attempts; uploads are stored flat.
	if filepath.Base(input.Filename) != input.Filename {
		return utils.BadRequest(c, "invalid filename")
	}

	path := filepath.Join(ac.Cfg.UploadDir, input.Filename)
	if _, err := os.Stat(path); err != nil {
		return utils.NotFound(c, "uploaded file not found")
	}

	goal := ac.goalForAnalysis(input.Date, input.GoalID)

	jobID := ac.Jobs.Enqueue(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		report, err := ac.AI.AnalyzeFile(ctx, path, goal)
		if err != nil {
			return nil, err
		}
		record, err := ac.Ingestor.Ingest(report, input.Category, input.Date)
		if err != nil {
			return nil, err
		}
		ac.notifyAnalysisDone(record)
		return record, nil
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}

// goalForAnalysis resolves the goal the upload belongs to, so the prompt
// can mention the target. Best effort: a missing plan just means no goal
// context.
func (ac *AnalysisController) goalForAnalysis(date string, goalID *int) *models.Goal {
	if date == "" || goalID == nil {
		return nil
	}
	var plan models.StudyPlan
	err := ac.DB.Preload("Goals", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("plan_date = ?", date).First(&plan).Error
	if err != nil || *goalID < 0 || *goalID >= len(plan.Goals) {
		return nil
	}
	goal := plan.Goals[*goalID]
	return &goal
}

// notifyAnalysisDone pushes the result card, resolving which goal window
// the record landed in so the card can link to the details page.
func (ac *AnalysisController) notifyAnalysisDone(record *models.SubmissionRecord) {
	detailsURL := ""
	if goalID, ok := ac.goalIDForRecord(record); ok {
		detailsURL = fmt.Sprintf("%s/training?date=%s&goal_id=%d",
			ac.Cfg.AppBaseURL, url.QueryEscape(record.PracticeDate), goalID)
	}
	if err := ac.Notifier.SendPayload(notify.AnalysisCard(record, detailsURL)); err != nil {
		ac.Log.Printf("analysis: webhook push failed: %v", err)
	}
}

func (ac *AnalysisController) goalIDForRecord(record *models.SubmissionRecord) (int, bool) {
	var schedule models.DailySchedule
	err := ac.DB.Preload("Items").Where("schedule_date = ?", record.PracticeDate).First(&schedule).Error
	if err != nil {
		return 0, false
	}
	items := services.SortItems(schedule.Items)
	training := services.TrainingItems(items)
	probe := []models.SubmissionRecord{*record}
	for i := range training {
		if len(ac.Reconciler.RecordsInGoalWindow(record.PracticeDate, i, items, probe)) > 0 {
			return i, true
		}
	}
	return 0, false
}

// JobStatus godoc
// @Summary Poll a background job
// @Tags analysis
// @Produce json
// @Router /api/jobs/{id} [get]
func (ac *AnalysisController) JobStatus(c *fiber.Ctx) error {
	job := ac.Jobs.Get(c.Params("id"))
	if job == nil {
		return utils.NotFound(c, "job not found")
	}
	return c.JSON(job)
}

// Comprehensive godoc
// @Summary Run the per-plan coaching analysis
// @Description Starts a background job that analyzes today's plan against
// @Description recent history and returns a coaching text
// @Tags analysis
// @Accept json
// @Produce json
// @Router /api/analysis/comprehensive [post]
func (ac *AnalysisController) Comprehensive(c *fiber.Ctx) error {
	type input struct {
		Date string `json:"date"`
	}
	var in input
	if err := c.BodyParser(&in); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}
	if in.Date == "" {
		return utils.BadRequest(c, "date is required")
	}

	jobID := ac.Jobs.Enqueue(func() (interface{}, error) {
		text, err := ac.runComprehensive(in.Date)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"analysis_text": text}, nil
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}

func (ac *AnalysisController) runComprehensive(date string) (string, error) {
	var plan models.StudyPlan
	var planPtr *models.StudyPlan
	err := ac.DB.Preload("Goals", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("plan_date = ?", date).First(&plan).Error
	if err == nil {
		planPtr = &plan
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	history, err := ac.Store.RecentHistory(14)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	return ac.AI.Comprehensive(ctx, planPtr, history)
}

// RunComprehensive is the automation entry: run today's coaching analysis
// and push it to the webhook.
func (ac *AnalysisController) RunComprehensive() error {
	today := time.Now().Format("2006-01-02")
	text, err := ac.runComprehensive(today)
	if err != nil {
		return err
	}
	return ac.Notifier.SendMarkdown("### 今日综合分析\n\n" + text)
}

// DashboardAnalysis godoc
// @Summary Run the all-time trend analysis
// @Description Starts a background job that aggregates the full history
// @Description and asks the AI for a markdown trend report
// @Tags analysis
// @Produce json
// @Router /api/analysis/dashboard [post]
func (ac *AnalysisController) DashboardAnalysis(c *fiber.Ctx) error {
	jobID := ac.Jobs.Enqueue(func() (interface{}, error) {
		text, err := ac.runDashboardAnalysis()
		if err != nil {
			return nil, err
		}
		return fiber.Map{"analysis": text}, nil
	})
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"job_id": jobID})
}

func (ac *AnalysisController) runDashboardAnalysis() (string, error) {
	records, err := ac.Store.AllHistory()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errors.New("no history to analyze")
	}

	stats := services.AggregateHistory(records)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	return ac.AI.DashboardAnalysis(ctx, stats)
}

// RunDashboardAnalysis is the automation entry: run the trend analysis
// and push the report to the webhook.
func (ac *AnalysisController) RunDashboardAnalysis() error {
	text, err := ac.runDashboardAnalysis()
	if err != nil {
		return err
	}
	return ac.Notifier.SendMarkdown(text)
}
