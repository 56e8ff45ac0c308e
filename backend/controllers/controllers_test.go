package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/backend/config"
	"studytrack/backend/jobs"
	"studytrack/backend/models"
	"studytrack/backend/notify"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "5002",
		AppBaseURL: "http://127.0.0.1:5002",
		UploadDir:  "uploads",
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestDashboardRequiresDate(t *testing.T) {
	app := fiber.New()
	dc := NewDashboardController(nil, testConfig(), nil)
	app.Get("/api/dashboard", dc.GetDashboard)

	resp := doRequest(t, app, http.MethodGet, "/api/dashboard", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTrainingDetailsParamValidation(t *testing.T) {
	app := fiber.New()
	dc := NewDashboardController(nil, testConfig(), nil)
	app.Get("/api/training/details", dc.GetTrainingDetails)

	resp := doRequest(t, app, http.MethodGet, "/api/training/details?date=2025-09-12", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/training/details?date=2025-09-12&goal_id=abc", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetPlanRequiresDate(t *testing.T) {
	app := fiber.New()
	pc := NewPlanController(nil, testConfig())
	app.Get("/api/plan", pc.GetPlan)

	resp := doRequest(t, app, http.MethodGet, "/api/plan", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSavePlanValidation(t *testing.T) {
	app := fiber.New()
	pc := NewPlanController(nil, testConfig())
	app.Post("/api/plan", pc.SavePlan)

	resp := doRequest(t, app, http.MethodPost, "/api/plan", `{"goals": []}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/plan", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSaveScheduleValidation(t *testing.T) {
	app := fiber.New()
	sc := NewScheduleController(nil, testConfig(), nil, nil, nil, nil)
	app.Post("/api/schedule", sc.SaveDailySchedule)

	t.Run("MissingFields", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/schedule", `{"schedule_date": "2025-09-12"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("BadDate", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/schedule",
			`{"schedule_date": "12/09/2025", "schedule_items": [{"start_time": "09:00", "end_time": "10:00", "activity": "资料分析-资料"}]}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MockExamOnWeekday", func(t *testing.T) {
		// 2025-09-12 is a Friday.
		body := `{"schedule_date": "2025-09-12", "schedule_items": [{"start_time": "09:00", "end_time": "12:00", "activity": "` + models.CategoryMockExam + `", "details": "模考"}]}`
		resp := doRequest(t, app, http.MethodPost, "/api/schedule", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdjustWithAIValidation(t *testing.T) {
	app := fiber.New()
	sc := NewScheduleController(nil, testConfig(), nil, jobs.NewManager(nil), nil, nil)
	app.Post("/api/schedule/adjust", sc.AdjustWithAI)

	resp := doRequest(t, app, http.MethodPost, "/api/schedule/adjust", `{"date": "2025-09-12"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/schedule/adjust", `{"date": "bad", "request": "调整"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeValidation(t *testing.T) {
	app := fiber.New()
	ac := NewAnalysisController(nil, testConfig(), nil, jobs.NewManager(nil), nil, nil)
	app.Post("/api/analyze", ac.Analyze)

	t.Run("MissingFilename", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/analyze", `{"category": "资料分析"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TraversalRejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/analyze", `{"filename": "../etc/passwd"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownFile", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodPost, "/api/analyze", `{"filename": "missing.pdf"}`)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestJobStatusUnknown(t *testing.T) {
	app := fiber.New()
	ac := NewAnalysisController(nil, testConfig(), nil, jobs.NewManager(nil), nil, nil)
	app.Get("/api/jobs/:id", ac.JobStatus)

	resp := doRequest(t, app, http.MethodGet, "/api/jobs/not-a-job", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSaveAutomationValidation(t *testing.T) {
	app := fiber.New()
	sc := NewSettingsController(nil, testConfig(), nil, nil, nil)
	app.Post("/api/automation", sc.SaveAutomation)

	resp := doRequest(t, app, http.MethodPost, "/api/automation", `{"comprehensive_at": "25:99"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTestWebhookWithoutURL(t *testing.T) {
	app := fiber.New()
	sc := NewSettingsController(nil, testConfig(), nil, notify.NewSender("", nil), nil)
	app.Post("/api/notify/test", sc.TestWebhook)

	resp := doRequest(t, app, http.MethodPost, "/api/notify/test", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
