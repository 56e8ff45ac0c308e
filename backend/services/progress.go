package services

import "math"

// GoalProgress is the per-goal slice of the day aggregate. ID is the
// goal's position within the day's plan.
type GoalProgress struct {
	ID                int    `json:"id"`
	Type              string `json:"type"`
	TargetQuestions   int    `json:"target_questions"`
	AnsweredQuestions int    `json:"answered_questions"`
	Percentage        int    `json:"percentage"`
	TargetAccuracy    int    `json:"target_accuracy"`
	TargetTimeMinutes int    `json:"target_time_minutes"`
	StartTime         string `json:"start_time,omitempty"`
	EndTime           string `json:"end_time,omitempty"`
}

// DayProgress is the day aggregate view. TotalAnswered is the raw
// (uncapped) sum shown to the user; Percentage is computed from per-goal
// capped sums so overshooting one goal cannot inflate the day.
type DayProgress struct {
	TotalAnswered int            `json:"total_answered"`
	TotalTarget   int            `json:"total_target"`
	Percentage    int            `json:"percentage"`
	GoalsProgress []GoalProgress `json:"goals_progress"`
}

// Progress is the single-goal progress payload.
type Progress struct {
	AnsweredQuestions int `json:"answered_questions"`
	Percentage        int `json:"percentage"`
}

// Percentage converts an answered count and a target into a completion
// percentage, capped at 100. A zero target counts as fully met the moment
// any work was done, and as untouched otherwise.
func Percentage(answered, target int) int {
	if target > 0 {
		pct := int(math.Round(float64(answered) / float64(target) * 100))
		if pct > 100 {
			return 100
		}
		return pct
	}
	if answered > 0 {
		return 100
	}
	return 0
}
