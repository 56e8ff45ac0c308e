package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/backend/models"
)

func TestGoalsFromSchedule(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "07:00", EndTime: "07:30", Activity: "特殊-特殊", Details: "起床和洗漱"},
		{StartTime: "09:00", EndTime: "10:30", Activity: "资料分析-资料", Details: "专项训练"},
		{StartTime: "11:00", EndTime: "12:00", Activity: "言语理解-言语", Details: "专项训练"},
	}

	goals := GoalsFromSchedule(items)
	require.Len(t, goals, 2)

	assert.Equal(t, models.CategoryDataAnalysis, goals[0].Type)
	assert.Equal(t, 0, goals[0].Position)
	assert.Equal(t, defaultTargetQuestions, goals[0].TargetQuestions)
	assert.Equal(t, defaultTargetAccuracy, goals[0].TargetAccuracy)
	assert.Equal(t, 90, goals[0].TargetTimeMinutes)

	assert.Equal(t, models.CategoryVerbalComprehension, goals[1].Type)
	assert.Equal(t, 1, goals[1].Position)
	assert.Equal(t, 60, goals[1].TargetTimeMinutes)
}

func TestGoalsFromScheduleOrdersByStartTime(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "20:00", EndTime: "21:00", Activity: "复盘-晚间", Details: "错题复盘"},
		{StartTime: "09:00", EndTime: "10:00", Activity: "资料分析-资料", Details: "专项训练"},
	}

	goals := GoalsFromSchedule(items)
	require.Len(t, goals, 2)
	assert.Equal(t, models.CategoryDataAnalysis, goals[0].Type)
	assert.Equal(t, "复盘", goals[1].Type)
}

func TestGoalsFromScheduleMalformedTimes(t *testing.T) {
	items := []models.ScheduleItem{
		{StartTime: "morning", EndTime: "noon", Activity: "资料分析-资料", Details: "专项训练"},
	}

	goals := GoalsFromSchedule(items)
	require.Len(t, goals, 1)
	assert.Equal(t, 60, goals[0].TargetTimeMinutes)
}

func TestGoalsFromScheduleEmpty(t *testing.T) {
	assert.Empty(t, GoalsFromSchedule(nil))
	assert.Empty(t, GoalsFromSchedule([]models.ScheduleItem{
		{StartTime: "07:00", EndTime: "07:30", Activity: "特殊-特殊", Details: "起床和洗漱"},
	}))
}
