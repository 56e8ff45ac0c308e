package jobs

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"studytrack/backend/models"
)

// Task is one automatable daily action, keyed by its models.Task* name.
type Task struct {
	Name string
	Run  func() error
}

// Scheduler fires enabled automation tasks once per day at their
// configured local time. It polls settings every minute so edits made
// through the API take effect without a restart.
type Scheduler struct {
	DB    *gorm.DB
	Tasks []Task
	Log   *log.Logger

	stop chan struct{}
}

func NewScheduler(db *gorm.DB, tasks []Task, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{DB: db, Tasks: tasks, Log: logger, stop: make(chan struct{})}
}

// Start launches the minute ticker on its own goroutine.
func (s *Scheduler) Start() {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.tick(now)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) tick(now time.Time) {
	var settings models.AutomationSettings
	err := s.DB.Where("task_name = ?", "general").First(&settings).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Printf("scheduler: could not load automation settings: %v", err)
		}
		return
	}

	clock := now.Format("15:04")
	today := now.Format("2006-01-02")

	for _, task := range s.Tasks {
		enabled, at, lastRun := taskFields(&settings, task.Name)
		if !enabled || at != clock || lastRun == today {
			continue
		}
		s.Log.Printf("scheduler: firing %s", task.Name)
		setLastRun(&settings, task.Name, today)
		if err := s.DB.Save(&settings).Error; err != nil {
			s.Log.Printf("scheduler: could not record run of %s: %v", task.Name, err)
			continue
		}
		go func(t Task) {
			if err := t.Run(); err != nil {
				s.Log.Printf("scheduler: %s failed: %v", t.Name, err)
			}
		}(task)
	}
}

func taskFields(settings *models.AutomationSettings, name string) (enabled bool, at, lastRun string) {
	switch name {
	case models.TaskComprehensiveAnalysis:
		return settings.ComprehensiveEnabled, settings.ComprehensiveAt, settings.ComprehensiveLastRun
	case models.TaskDataAnalysis:
		return settings.DataAnalysisEnabled, settings.DataAnalysisAt, settings.DataAnalysisLastRun
	case models.TaskDailyPlan:
		return settings.DailyPlanEnabled, settings.DailyPlanAt, settings.DailyPlanLastRun
	}
	return false, "", ""
}

func setLastRun(settings *models.AutomationSettings, name, day string) {
	switch name {
	case models.TaskComprehensiveAnalysis:
		settings.ComprehensiveLastRun = day
	case models.TaskDataAnalysis:
		settings.DataAnalysisLastRun = day
	case models.TaskDailyPlan:
		settings.DailyPlanLastRun = day
	}
}
