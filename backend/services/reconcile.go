package services

import (
	"errors"
	"log"

	"studytrack/backend/models"
)

// ErrGoalNotFound is returned when a goal index does not exist within the
// requested day's plan.
var ErrGoalNotFound = errors.New("goal not found")

// Reconciler aligns a day's schedule to its goals and attributes submitted
// records into goal time windows. All methods operate on read-only
// snapshots fetched by the caller; running one twice over the same inputs
// yields identical output.
type Reconciler struct {
	Log *log.Logger
}

func NewReconciler(logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{Log: logger}
}

// GoalResult is the single-goal view: the goal (with its target possibly
// recomputed for review sessions) plus attributed progress.
type GoalResult struct {
	Goal     models.Goal `json:"goal"`
	Progress Progress    `json:"progress"`
}

// Dashboard builds the day aggregate for one date: review targets are
// recomputed, every goal gets its window-attributed answered count, and
// the day percentage is derived from per-goal capped sums.
func (r *Reconciler) Dashboard(date string, goals []models.Goal, items []models.ScheduleItem, records []models.SubmissionRecord) DayProgress {
	training := TrainingItems(items)

	// Work on a copy: review-target recomputation must not leak into the
	// caller's snapshot.
	dayGoals := make([]models.Goal, len(goals))
	copy(dayGoals, goals)
	for i, target := range r.reviewTargets(date, dayGoals, training, records) {
		dayGoals[i].TargetQuestions = target
	}

	progress := make([]GoalProgress, 0, len(dayGoals))
	totalTarget := 0
	totalAnswered := 0
	totalCapped := 0

	for i, goal := range dayGoals {
		answered := 0
		var startTime, endTime string
		if i < len(training) {
			item := training[i]
			startTime, endTime = item.StartTime, item.EndTime
			answered = r.answeredInWindow(date, goal.Type, item, records)
		}

		totalTarget += goal.TargetQuestions
		totalAnswered += answered
		if answered < goal.TargetQuestions {
			totalCapped += answered
		} else {
			totalCapped += goal.TargetQuestions
		}

		progress = append(progress, GoalProgress{
			ID:                i,
			Type:              goal.Type,
			TargetQuestions:   goal.TargetQuestions,
			AnsweredQuestions: answered,
			Percentage:        Percentage(answered, goal.TargetQuestions),
			TargetAccuracy:    goal.TargetAccuracy,
			TargetTimeMinutes: goal.TargetTimeMinutes,
			StartTime:         startTime,
			EndTime:           endTime,
		})
	}

	dayPct := 0
	if totalTarget > 0 {
		dayPct = Percentage(totalCapped, totalTarget)
	} else if totalAnswered > 0 {
		dayPct = 100
	}

	return DayProgress{
		TotalAnswered: totalAnswered,
		TotalTarget:   totalTarget,
		Percentage:    dayPct,
		GoalsProgress: progress,
	}
}

// GoalDetails computes the result for a single goal addressed by its
// position in the day's plan.
func (r *Reconciler) GoalDetails(date string, goalID int, goals []models.Goal, items []models.ScheduleItem, records []models.SubmissionRecord) (GoalResult, error) {
	if goalID < 0 || goalID >= len(goals) {
		return GoalResult{}, ErrGoalNotFound
	}

	training := TrainingItems(items)
	goal := goals[goalID]

	if goal.IsReview() {
		// The shared pass walks every earlier review window first so the
		// consumed-record bookkeeping matches the day aggregate exactly.
		if target, ok := r.reviewTargets(date, goals, training, records)[goalID]; ok {
			goal.TargetQuestions = target
		}
	}

	answered := 0
	if goalID < len(training) {
		answered = r.answeredInWindow(date, goal.Type, training[goalID], records)
	}

	return GoalResult{
		Goal: goal,
		Progress: Progress{
			AnsweredQuestions: answered,
			Percentage:        Percentage(answered, goal.TargetQuestions),
		},
	}, nil
}

// RecordsInGoalWindow filters a day's records down to those inside the
// window of the goal at goalID, used by the history view. A goal index
// past the training items yields an empty slice; a missing schedule
// returns the records unchanged.
func (r *Reconciler) RecordsInGoalWindow(date string, goalID int, items []models.ScheduleItem, records []models.SubmissionRecord) []models.SubmissionRecord {
	if len(items) == 0 {
		return records
	}
	training := TrainingItems(items)
	if goalID < 0 || goalID >= len(training) {
		return []models.SubmissionRecord{}
	}

	item := training[goalID]
	startDt, endDt, err := attributionWindow(date, item.StartTime, item.EndTime)
	if err != nil {
		r.Log.Printf("invalid history window for %s: %v", date, err)
		return []models.SubmissionRecord{}
	}

	filtered := make([]models.SubmissionRecord, 0, len(records))
	for _, rec := range records {
		t, err := ParseSubmissionTime(rec.SubmissionTime)
		if err != nil {
			continue
		}
		if !t.Before(startDt) && !t.After(endDt) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
