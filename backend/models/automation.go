package models

import "gorm.io/gorm"

// Automation task names.
const (
	TaskComprehensiveAnalysis = "comprehensive_analysis"
	TaskDataAnalysis          = "data_analysis"
	TaskDailyPlan             = "daily_plan"
)

// AutomationSettings controls which daily AI tasks fire automatically and
// at what local time ("HH:MM"). A single row named "general" exists.
type AutomationSettings struct {
	gorm.Model `json:"-"`
	TaskName   string `gorm:"size:100;not null;uniqueIndex" json:"task_name"`

	ComprehensiveEnabled bool   `json:"comprehensive_enabled"`
	DataAnalysisEnabled  bool   `json:"data_analysis_enabled"`
	DailyPlanEnabled     bool   `json:"daily_plan_enabled"`
	ComprehensiveAt      string `gorm:"size:10;default:'22:00'" json:"comprehensive_at"`
	DataAnalysisAt       string `gorm:"size:10;default:'22:00'" json:"data_analysis_at"`
	DailyPlanAt          string `gorm:"size:10;default:'23:00'" json:"daily_plan_at"`

	// LastRun dates per task ("YYYY-MM-DD"), preventing double fires.
	ComprehensiveLastRun string `gorm:"size:50" json:"comprehensive_last_run"`
	DataAnalysisLastRun  string `gorm:"size:50" json:"data_analysis_last_run"`
	DailyPlanLastRun     string `gorm:"size:50" json:"daily_plan_last_run"`
}
