package services

import (
	"fmt"
	"log"
	"time"

	"studytrack/backend/ai"
	"studytrack/backend/models"
)

// useCurrentTime is the sentinel the analysis prompt makes the model emit
// when the report shows no submission timestamp.
const useCurrentTime = "USE_CURRENT_TIME"

// Ingestor flattens AI analysis reports into submission records and
// persists them.
type Ingestor struct {
	Store *RecordStore
	Log   *log.Logger
}

func NewIngestor(store *RecordStore, logger *log.Logger) *Ingestor {
	if logger == nil {
		logger = log.Default()
	}
	return &Ingestor{Store: store, Log: logger}
}

// BuildRecord turns an analysis report into a SubmissionRecord without
// touching the database. The category passed by the caller wins over
// whatever the model guessed; the record date defaults to now's date.
func BuildRecord(report *ai.AnalysisReport, category, date string, now time.Time, logger *log.Logger) (models.SubmissionRecord, error) {
	if logger == nil {
		logger = log.Default()
	}
	summary := report.PerformanceSummary
	answered := summary.CorrectAnswers + summary.IncorrectAnswers

	practiceType := category
	if practiceType == "" {
		practiceType = report.ReportMetadata.Category()
	}
	if practiceType == "" {
		return models.SubmissionRecord{}, fmt.Errorf("could not determine practice type from request or AI response")
	}

	if date == "" {
		date = now.Format(dayLayout)
	}

	submissionTime := report.ReportMetadata.SubmissionTime()
	if submissionTime == "" || submissionTime == useCurrentTime {
		submissionTime = now.Format(timestampLayout)
	} else if normalized, err := NormalizeSubmissionTime(submissionTime); err == nil {
		submissionTime = normalized
	} else {
		logger.Printf("could not parse AI-provided timestamp %q, falling back to current time", submissionTime)
		submissionTime = now.Format(timestampLayout)
	}

	accuracyOverall := 0.0
	if summary.TotalQuestions > 0 {
		accuracyOverall = float64(summary.CorrectAnswers) / float64(summary.TotalQuestions)
	}
	accuracyAnswered := 0.0
	if answered > 0 {
		accuracyAnswered = float64(summary.CorrectAnswers) / float64(answered)
	}

	return models.SubmissionRecord{
		PracticeType:             practiceType,
		PracticeDate:             date,
		SubmissionTime:           submissionTime,
		Difficulty:               report.ReportMetadata.Difficulty,
		TotalQuestions:           summary.TotalQuestions,
		QuestionsAnswered:        answered,
		CorrectAnswers:           summary.CorrectAnswers,
		IncorrectAnswers:         summary.IncorrectAnswers,
		UnansweredQuestions:      summary.UnansweredQuestions,
		TotalTimeMinutes:         summary.TotalTimeMinutes,
		AccuracyRateOverall:      accuracyOverall,
		AccuracyRateAnswered:     accuracyAnswered,
		CompletionScore:          report.CompletionScore,
		IncorrectQuestionNumbers: string(report.IncorrectQuestionNumbers),
		AnswerCard:               string(report.AnswerCard),
		AbilityAnalysis:          string(report.AbilityAnalysis),
		SourceFilename:           report.ReportMetadata.Filename,
	}, nil
}

// Ingest builds and persists a record from one analysis report. The write
// is its own atomic unit; reconciliation reads see either nothing or the
// complete record.
func (ing *Ingestor) Ingest(report *ai.AnalysisReport, category, date string) (*models.SubmissionRecord, error) {
	record, err := BuildRecord(report, category, date, time.Now(), ing.Log)
	if err != nil {
		return nil, err
	}
	if err := ing.Store.Save(&record); err != nil {
		return nil, fmt.Errorf("failed to save analysis result: %w", err)
	}
	return &record, nil
}
