package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"studytrack/backend/models"
)

// AdjustmentResult is the model's reworked multi-day plan.
type AdjustmentResult struct {
	Suggestion       string                           `json:"suggestion"`
	UpdatedSchedules map[string][]models.ScheduleItem `json:"updated_schedules"`
	UpdatedGoals     map[string][]models.Goal         `json:"updated_goals,omitempty"`
}

const defaultSuggestion = "我已经根据您的要求更新了计划。"

// AdjustSchedule asks the model to rework the plan, retrying transient
// API failures. The parsed result has its schedule items sorted by start
// time and always carries a suggestion text.
func (c *Client) AdjustSchedule(ctx context.Context, adjCtx AdjustmentContext) (*AdjustmentResult, error) {
	text, err := c.GenerateWithRetry(ctx,
		[]Part{{Text: scheduleAdjustmentPrompt(adjCtx)}},
		&GenerationConfig{Temperature: 0.1},
		3, 5*time.Second)
	if err != nil {
		return nil, err
	}
	return ParseAdjustment(text)
}

// ParseAdjustment extracts and normalizes the adjustment JSON out of a
// raw model response.
func ParseAdjustment(text string) (*AdjustmentResult, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var result AdjustmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse adjustment response: %w", err)
	}

	if result.Suggestion == "" {
		result.Suggestion = defaultSuggestion
	}
	for date, items := range result.UpdatedSchedules {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].StartTime < items[j].StartTime
		})
		result.UpdatedSchedules[date] = items
	}
	return &result, nil
}
