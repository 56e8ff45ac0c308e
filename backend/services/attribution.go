package services

import (
	"studytrack/backend/models"
)

// answeredInWindow sums questions_answered over the day's records that
// belong to the goal's category and fall inside the aligned item's closed
// [start:00, end:59] window. Records with unparsable timestamps are logged
// and skipped; they never fail the computation.
func (r *Reconciler) answeredInWindow(date, goalType string, item models.ScheduleItem, records []models.SubmissionRecord) int {
	startDt, endDt, err := attributionWindow(date, item.StartTime, item.EndTime)
	if err != nil {
		r.Log.Printf("invalid attribution window for %s (%s-%s): %v", date, item.StartTime, item.EndTime, err)
		return 0
	}

	answered := 0
	for _, rec := range records {
		if rec.PracticeType != goalType || rec.SubmissionTime == "" {
			continue
		}
		t, err := ParseSubmissionTime(rec.SubmissionTime)
		if err != nil {
			r.Log.Printf("skipping record %d during progress calculation: %v", rec.ID, err)
			continue
		}
		if !t.Before(startDt) && !t.After(endDt) {
			answered += rec.QuestionsAnswered
		}
	}
	return answered
}
