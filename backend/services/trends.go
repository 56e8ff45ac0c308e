package services

import (
	"sort"

	"studytrack/backend/models"
)

// TypeAggregate summarizes all-time performance in one category.
type TypeAggregate struct {
	TotalQuestions   int     `json:"total_q"`
	CorrectQuestions int     `json:"correct_q"`
	TotalTimeMinutes int     `json:"total_time"`
	Records          int     `json:"records"`
	AvgAccuracy      float64 `json:"avg_accuracy"`
}

// DailyAccuracy is one point of an accuracy-over-time trend: the mean
// answered-accuracy (in percent) of the records submitted that day.
type DailyAccuracy struct {
	Date     string  `json:"submission_time"`
	Accuracy float64 `json:"accuracy_answered"`
}

// HistoryStats is the aggregated view handed to the AI trend analysis.
type HistoryStats struct {
	OverallTrend   []DailyAccuracy            `json:"overallTrend"`
	TypeAggregates map[string]TypeAggregate   `json:"typeAggregates"`
	TypeTrends     map[string][]DailyAccuracy `json:"typeTrends"`
}

// AggregateHistory reduces the full record history into per-day accuracy
// trends and per-category totals. Records with unparsable timestamps are
// dropped from the trends but still counted into the aggregates.
func AggregateHistory(records []models.SubmissionRecord) HistoryStats {
	stats := HistoryStats{
		TypeAggregates: make(map[string]TypeAggregate),
		TypeTrends:     make(map[string][]DailyAccuracy),
	}

	overall := make(map[string][]float64)
	perType := make(map[string]map[string][]float64)

	for _, rec := range records {
		agg := stats.TypeAggregates[rec.PracticeType]
		agg.TotalQuestions += rec.QuestionsAnswered
		agg.CorrectQuestions += rec.CorrectAnswers
		agg.TotalTimeMinutes += rec.TotalTimeMinutes
		agg.Records++
		stats.TypeAggregates[rec.PracticeType] = agg

		t, err := ParseSubmissionTime(rec.SubmissionTime)
		if err != nil {
			continue
		}
		day := t.Format(dayLayout)
		accuracy := 0.0
		if rec.QuestionsAnswered > 0 {
			accuracy = float64(rec.CorrectAnswers) / float64(rec.QuestionsAnswered) * 100
		}
		overall[day] = append(overall[day], accuracy)
		if perType[rec.PracticeType] == nil {
			perType[rec.PracticeType] = make(map[string][]float64)
		}
		perType[rec.PracticeType][day] = append(perType[rec.PracticeType][day], accuracy)
	}

	for practiceType, agg := range stats.TypeAggregates {
		if agg.TotalQuestions > 0 {
			agg.AvgAccuracy = float64(agg.CorrectQuestions) / float64(agg.TotalQuestions) * 100
		}
		stats.TypeAggregates[practiceType] = agg
	}

	stats.OverallTrend = dailyMeans(overall)
	for practiceType, days := range perType {
		stats.TypeTrends[practiceType] = dailyMeans(days)
	}
	return stats
}

func dailyMeans(byDay map[string][]float64) []DailyAccuracy {
	trend := make([]DailyAccuracy, 0, len(byDay))
	for day, values := range byDay {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		trend = append(trend, DailyAccuracy{Date: day, Accuracy: sum / float64(len(values))})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}
