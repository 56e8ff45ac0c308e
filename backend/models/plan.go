package models

import (
	"strings"

	"gorm.io/gorm"
)

// StudyPlan holds the ordered goal list for one day. Goal order matters:
// the i-th goal corresponds to the i-th training-relevant schedule item of
// the same day (positional alignment, established at plan creation).
type StudyPlan struct {
	gorm.Model `json:"-"`
	PlanDate   string `gorm:"size:50;not null;uniqueIndex" json:"plan_date"`
	Goals      []Goal `gorm:"constraint:OnDelete:CASCADE" json:"goals"`
}

type Goal struct {
	gorm.Model        `json:"-"`
	PlanID            uint   `json:"-"`
	Position          int    `gorm:"not null" json:"-"`
	Type              string `gorm:"size:100;not null" json:"type"`
	TargetQuestions   int    `json:"target_questions"`
	TargetAccuracy    int    `json:"target_accuracy"`
	TargetTimeMinutes int    `json:"target_time_minutes"`
}

// IsReview reports whether the goal represents a mistake-review session.
func (g Goal) IsReview() bool {
	for _, marker := range ReviewMarkers {
		if strings.Contains(g.Type, marker) {
			return true
		}
	}
	return false
}
