package ai

import "encoding/json"

// AnalysisReport is the structured result extracted from one uploaded
// exercise report. Field names follow the JSON schema the prompt pins the
// model to.
type AnalysisReport struct {
	ReportMetadata     ReportMetadata     `json:"report_metadata"`
	PerformanceSummary PerformanceSummary `json:"performance_summary"`
	CompletionScore    int                `json:"completion_score"`

	IncorrectQuestionNumbers json.RawMessage `json:"incorrect_question_numbers,omitempty"`
	AnswerCard               json.RawMessage `json:"answer_card,omitempty"`
	AbilityAnalysis          json.RawMessage `json:"ability_analysis,omitempty"`
}

type ReportMetadata struct {
	Filename string `json:"filename"`
	// The model may emit either key depending on the report layout.
	Timestamp           string  `json:"timestamp,omitempty"`
	SubmissionTimestamp string  `json:"submission_timestamp,omitempty"`
	Subject             string  `json:"subject,omitempty"`
	ExerciseType        string  `json:"exercise_type,omitempty"`
	Difficulty          float64 `json:"difficulty,omitempty"`
}

// SubmissionTime returns whichever timestamp key the model populated.
func (m ReportMetadata) SubmissionTime() string {
	if m.SubmissionTimestamp != "" {
		return m.SubmissionTimestamp
	}
	return m.Timestamp
}

// Category returns the model's best guess at the practice category.
func (m ReportMetadata) Category() string {
	if m.Subject != "" {
		return m.Subject
	}
	return m.ExerciseType
}

type PerformanceSummary struct {
	TotalQuestions      int `json:"total_questions"`
	CorrectAnswers      int `json:"correct_answers"`
	IncorrectAnswers    int `json:"incorrect_answers"`
	UnansweredQuestions int `json:"unanswered_questions"`
	TotalTimeMinutes    int `json:"total_time_minutes"`
}
