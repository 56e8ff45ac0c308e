package services

import (
	"errors"

	"studytrack/backend/models"

	"gorm.io/gorm"
)

// Default targets assigned to goals generated from a schedule. The user
// (or the AI adjustment) refines them afterwards.
const (
	defaultTargetQuestions = 20
	defaultTargetAccuracy  = 75
)

// GoalsFromSchedule derives the day's ordered goal list from its schedule
// items: one goal per training-relevant item, in start-time order, with
// the item's duration as the time target. This construction is what
// establishes the positional goal-to-item alignment the reconciler
// depends on.
func GoalsFromSchedule(items []models.ScheduleItem) []models.Goal {
	goals := make([]models.Goal, 0, len(items))
	for _, item := range TrainingItems(items) {
		trainingType := item.TrainingType()
		if trainingType == "" {
			continue
		}
		goals = append(goals, models.Goal{
			Position:          len(goals),
			Type:              trainingType,
			TargetQuestions:   defaultTargetQuestions,
			TargetAccuracy:    defaultTargetAccuracy,
			TargetTimeMinutes: durationMinutes(item.StartTime, item.EndTime),
		})
	}
	return goals
}

// SynchronizePlanFromSchedule replaces the study plan for a date with the
// goal list derived from the given schedule items, creating the plan if
// it does not exist. Runs inside the caller's transaction when one is
// passed.
func SynchronizePlanFromSchedule(db *gorm.DB, date string, items []models.ScheduleItem) error {
	goals := GoalsFromSchedule(items)

	var plan models.StudyPlan
	err := db.Where("plan_date = ?", date).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan = models.StudyPlan{PlanDate: date, Goals: goals}
		return db.Create(&plan).Error
	}
	if err != nil {
		return err
	}

	if err := db.Where("plan_id = ?", plan.ID).Delete(&models.Goal{}).Error; err != nil {
		return err
	}
	for i := range goals {
		goals[i].PlanID = plan.ID
	}
	if len(goals) == 0 {
		return nil
	}
	return db.Create(&goals).Error
}

// ReplacePlanGoals overwrites the goal list of a date's plan with an
// explicit list (user edit or AI adjustment), creating the plan when
// missing.
func ReplacePlanGoals(db *gorm.DB, date string, goals []models.Goal) (*models.StudyPlan, error) {
	for i := range goals {
		goals[i].Position = i
	}

	var plan models.StudyPlan
	err := db.Where("plan_date = ?", date).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan = models.StudyPlan{PlanDate: date, Goals: goals}
		if err := db.Create(&plan).Error; err != nil {
			return nil, err
		}
		return &plan, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.Where("plan_id = ?", plan.ID).Delete(&models.Goal{}).Error; err != nil {
		return nil, err
	}
	for i := range goals {
		goals[i].PlanID = plan.ID
		goals[i].ID = 0
	}
	if len(goals) > 0 {
		if err := db.Create(&goals).Error; err != nil {
			return nil, err
		}
	}
	plan.Goals = goals
	return &plan, nil
}

// ReplaceScheduleItems overwrites the schedule for a date, creating it
// when missing.
func ReplaceScheduleItems(db *gorm.DB, date string, items []models.ScheduleItem) (*models.DailySchedule, error) {
	var schedule models.DailySchedule
	err := db.Where("schedule_date = ?", date).First(&schedule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		schedule = models.DailySchedule{ScheduleDate: date, Items: items}
		if err := db.Create(&schedule).Error; err != nil {
			return nil, err
		}
		return &schedule, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.Where("schedule_id = ?", schedule.ID).Delete(&models.ScheduleItem{}).Error; err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ScheduleID = schedule.ID
		items[i].ID = 0
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return nil, err
		}
	}
	schedule.Items = items
	return &schedule, nil
}
