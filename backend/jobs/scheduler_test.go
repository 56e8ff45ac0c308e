package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studytrack/backend/models"
)

func TestTaskFields(t *testing.T) {
	settings := &models.AutomationSettings{
		TaskName:             "general",
		ComprehensiveEnabled: true,
		ComprehensiveAt:      "22:00",
		ComprehensiveLastRun: "2025-09-11",
		DailyPlanEnabled:     false,
		DailyPlanAt:          "23:00",
	}

	enabled, at, lastRun := taskFields(settings, models.TaskComprehensiveAnalysis)
	assert.True(t, enabled)
	assert.Equal(t, "22:00", at)
	assert.Equal(t, "2025-09-11", lastRun)

	enabled, at, _ = taskFields(settings, models.TaskDailyPlan)
	assert.False(t, enabled)
	assert.Equal(t, "23:00", at)

	enabled, _, _ = taskFields(settings, "unknown_task")
	assert.False(t, enabled)
}

func TestSetLastRun(t *testing.T) {
	settings := &models.AutomationSettings{}

	setLastRun(settings, models.TaskDataAnalysis, "2025-09-12")
	assert.Equal(t, "2025-09-12", settings.DataAnalysisLastRun)
	assert.Empty(t, settings.ComprehensiveLastRun)
	assert.Empty(t, settings.DailyPlanLastRun)
}
