package services

import (
	"strings"

	"studytrack/backend/models"
)

// reviewTargets derives the dynamic target_questions for every review goal
// of the day. Review sessions exist to clear the mistakes accumulated
// since the previous review, so each target is the sum of incorrect plus
// unanswered questions over the half-open window
//
//	[previous review's end, this review's start)
//
// scanning the goal list in order with one shared consumed-record set, so
// a record is never counted into two review windows on the same day.
//
// The map is keyed by goal position; non-review goals are absent.
func (r *Reconciler) reviewTargets(date string, goals []models.Goal, training []models.ScheduleItem, records []models.SubmissionRecord) map[int]int {
	targets := make(map[int]int)
	consumed := make(map[uint]struct{})

	for i, goal := range goals {
		if !goal.IsReview() {
			continue
		}
		// No aligned schedule item means no time window to derive a
		// backlog from.
		if i >= len(training) {
			targets[i] = 0
			continue
		}
		item := training[i]

		// Window start: end of the most recent prior review session,
		// or the beginning of the day.
		startClock := defaultStartClock
		for j := i - 1; j >= 0; j-- {
			if goals[j].IsReview() {
				if j < len(training) {
					startClock = clockOrDefault(training[j].EndTime, defaultStartClock)
				}
				break
			}
		}
		// Window end: start of this review session.
		endClock := clockOrDefault(item.StartTime, defaultEndClock)

		windowStart, err := dayClock(date, startClock, "00")
		if err != nil {
			r.Log.Printf("invalid review window start for %s: %v", date, err)
			targets[i] = 0
			continue
		}
		windowEnd, err := dayClock(date, endClock, "00")
		if err != nil {
			r.Log.Printf("invalid review window end for %s: %v", date, err)
			targets[i] = 0
			continue
		}

		subjects := reviewSubjects(item.Details)

		total := 0
		for _, rec := range records {
			if _, done := consumed[rec.ID]; done {
				continue
			}
			if rec.SubmissionTime == "" {
				continue
			}
			t, err := ParseSubmissionTime(rec.SubmissionTime)
			if err != nil {
				r.Log.Printf("skipping record %d during review calculation: %v", rec.ID, err)
				continue
			}
			// Half-open containment keeps a boundary record out of the
			// next window.
			if t.Before(windowStart) || !t.Before(windowEnd) {
				continue
			}
			if len(subjects) > 0 {
				if _, ok := subjects[rec.PracticeType]; !ok {
					continue
				}
			}
			total += rec.IncorrectAnswers + rec.UnansweredQuestions
			consumed[rec.ID] = struct{}{}
		}
		targets[i] = total
	}
	return targets
}

// reviewSubjects reads the subject restriction out of a review item's
// details text. An empty map means every subject is in scope.
func reviewSubjects(details string) map[string]struct{} {
	subjects := make(map[string]struct{})
	for keyword, canonical := range models.SubjectKeywords {
		if strings.Contains(details, keyword) {
			subjects[canonical] = struct{}{}
		}
	}
	return subjects
}
