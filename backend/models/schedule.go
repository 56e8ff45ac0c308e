package models

import (
	"strings"

	"gorm.io/gorm"
)

// DailySchedule is the time-boxed activity list for one day. Items are
// kept unsorted in storage; readers sort by start time ("HH:MM" sorts
// correctly as a plain string).
type DailySchedule struct {
	gorm.Model   `json:"-"`
	ScheduleDate string         `gorm:"size:50;not null;uniqueIndex" json:"schedule_date"`
	Items        []ScheduleItem `gorm:"constraint:OnDelete:CASCADE" json:"schedule_items"`
}

type ScheduleItem struct {
	gorm.Model `json:"-"`
	ScheduleID uint   `json:"-"`
	StartTime  string `gorm:"size:10" json:"start_time"`
	EndTime    string `gorm:"size:10" json:"end_time"`
	// Activity is "Category-SubCategory", e.g. "资料分析-资料".
	Activity string `gorm:"size:100" json:"activity"`
	Details  string `json:"details"`
}

// IsTraining reports whether the item denotes a study session, judged by
// the fixed keyword set over both the activity and details text.
func (it ScheduleItem) IsTraining() bool {
	for _, kw := range TrainingKeywords {
		if strings.Contains(it.Activity, kw) || strings.Contains(it.Details, kw) {
			return true
		}
	}
	return false
}

// TrainingType extracts the category part of the activity string
// ("资料分析-资料" -> "资料分析") normalized to its canonical name.
func (it ScheduleItem) TrainingType() string {
	category := strings.TrimSpace(strings.SplitN(it.Activity, "-", 2)[0])
	if canonical, ok := CanonicalCategoryNames[category]; ok {
		return canonical
	}
	// Fallback: anything mentioning the mock exam is the mock exam.
	if strings.Contains(category, CategoryMockExam) {
		return CategoryMockExam
	}
	return category
}
