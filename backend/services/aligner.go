package services

import (
	"sort"

	"studytrack/backend/models"
)

// TrainingItems sorts a day's schedule items by start time and filters
// them down to the training-relevant ones. The result is what goals align
// against: goals[i] belongs to TrainingItems(items)[i].
//
// "HH:MM" strings sort correctly lexically, so no clock parsing happens
// here; malformed times simply sort where the raw string lands.
func TrainingItems(items []models.ScheduleItem) []models.ScheduleItem {
	sorted := make([]models.ScheduleItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	training := make([]models.ScheduleItem, 0, len(sorted))
	for _, item := range sorted {
		if item.IsTraining() {
			training = append(training, item)
		}
	}
	return training
}

// SortItems returns the items ordered by start time without filtering.
func SortItems(items []models.ScheduleItem) []models.ScheduleItem {
	sorted := make([]models.ScheduleItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}
