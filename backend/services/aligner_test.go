package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/backend/models"
)

func TestTrainingItems(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "14:30", EndTime: "16:00", Activity: "特殊-特殊", Details: "自主安排学习"},
		{StartTime: "07:00", EndTime: "07:30", Activity: "特殊-特殊", Details: "起床和洗漱"},
		{StartTime: "11:00", EndTime: "12:00", Activity: "言语理解-言语", Details: "专项训练"},
		{StartTime: "09:00", EndTime: "10:30", Activity: "资料分析-资料", Details: "专项训练"},
	}

	training := TrainingItems(items)
	require.Len(t, training, 3)

	// Sorted by start time, non-training breakfast item dropped. The
	// 14:30 block counts as training because "学习" appears in details.
	assert.Equal(t, "09:00", training[0].StartTime)
	assert.Equal(t, "11:00", training[1].StartTime)
	assert.Equal(t, "14:30", training[2].StartTime)

	// Input order untouched.
	assert.Equal(t, "14:30", items[0].StartTime)
}

func TestTrainingItemsKeywordInDetailsOnly(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "20:00", EndTime: "21:00", Activity: "晚间安排", Details: "错题复盘"},
	}
	assert.Len(t, TrainingItems(items), 1)
}

func TestSortItems(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "21:00"},
		{StartTime: "07:00"},
		{StartTime: "14:00"},
	}
	sorted := SortItems(items)
	assert.Equal(t, "07:00", sorted[0].StartTime)
	assert.Equal(t, "14:00", sorted[1].StartTime)
	assert.Equal(t, "21:00", sorted[2].StartTime)
}

func TestScheduleItemTrainingType(t *testing.T) {
	assert.Equal(t, models.CategoryDataAnalysis,
		models.ScheduleItem{Activity: "资料分析-资料"}.TrainingType())
	assert.Equal(t, models.CategoryVerbalComprehension,
		models.ScheduleItem{Activity: "言语理解-言语"}.TrainingType())
	assert.Equal(t, models.CategoryMockExam,
		models.ScheduleItem{Activity: "模考-上午场"}.TrainingType())
	// Unknown categories pass through untouched.
	assert.Equal(t, "自定义练习",
		models.ScheduleItem{Activity: "自定义练习-专项"}.TrainingType())
}
