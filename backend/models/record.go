package models

import "time"

// SubmissionRecord is one analyzed exercise report. Created once at
// ingestion time and never mutated afterwards; the reconciliation engine
// only ever reads these.
type SubmissionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	PracticeType string `gorm:"size:100;not null;index:idx_record_day" json:"practice_type"`
	// PracticeDate partitions records per day ("YYYY-MM-DD"); it mirrors
	// the date the report was submitted for, not necessarily today.
	PracticeDate   string  `gorm:"size:50;not null;index:idx_record_day" json:"practice_date"`
	SubmissionTime string  `gorm:"size:100;not null" json:"submission_time"`
	Difficulty     float64 `json:"difficulty"`

	TotalQuestions      int `json:"total_questions"`
	QuestionsAnswered   int `json:"questions_answered"`
	CorrectAnswers      int `json:"correct_answers"`
	IncorrectAnswers    int `json:"incorrect_answers"`
	UnansweredQuestions int `json:"unanswered_questions"`
	TotalTimeMinutes    int `json:"total_time_minutes"`

	AccuracyRateOverall  float64 `json:"accuracy_rate_overall"`
	AccuracyRateAnswered float64 `json:"accuracy_rate_answered"`
	CompletionScore      int     `json:"completion_score"`

	// JSON-encoded detail blobs produced by the AI analyzer.
	IncorrectQuestionNumbers string `json:"incorrect_question_numbers,omitempty"`
	AnswerCard               string `json:"answer_card,omitempty"`
	AbilityAnalysis          string `json:"ability_analysis,omitempty"`

	SourceFilename string `gorm:"size:255" json:"source_filename,omitempty"`
}
