package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studytrack/backend/models"
)

var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
}

// AnalyzeFile sends an exercise report (PDF or image) to the model inline
// and returns the extracted metrics.
func (c *Client) AnalyzeFile(ctx context.Context, path string, goal *models.Goal) (*AnalysisReport, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeByExt[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read report file: %w", err)
	}

	parts := []Part{
		{Text: fileAnalysisPrompt(filepath.Base(path), goal)},
		{InlineData: &InlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(data),
		}},
	}

	text, err := c.GenerateContent(ctx, parts, &GenerationConfig{
		ResponseMimeType: "application/json",
		Temperature:      0.2,
	})
	if err != nil {
		return nil, err
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var report AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("failed to parse analysis report: %w", err)
	}
	if report.ReportMetadata.Filename == "" {
		report.ReportMetadata.Filename = filepath.Base(path)
	}
	return &report, nil
}

// Comprehensive runs the per-plan coaching analysis and returns the
// Chinese analysis text.
func (c *Client) Comprehensive(ctx context.Context, plan *models.StudyPlan, history []models.SubmissionRecord) (string, error) {
	text, err := c.GenerateContent(ctx, []Part{{Text: comprehensivePrompt(plan, history)}}, &GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema: map[string]interface{}{
			"type":       "OBJECT",
			"properties": map[string]interface{}{"analysis_text": map[string]string{"type": "STRING"}},
			"required":   []string{"analysis_text"},
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", err
	}
	return extractTextField(text, "analysis_text")
}

// DashboardAnalysis runs the all-time trend analysis over pre-aggregated
// data and returns the markdown report text.
func (c *Client) DashboardAnalysis(ctx context.Context, aggregates interface{}) (string, error) {
	text, err := c.GenerateContent(ctx, []Part{{Text: dashboardPrompt(aggregates)}}, &GenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema: map[string]interface{}{
			"type":       "OBJECT",
			"properties": map[string]interface{}{"analysis": map[string]string{"type": "STRING"}},
			"required":   []string{"analysis"},
		},
		Temperature: 0.6,
	})
	if err != nil {
		return "", err
	}
	return extractTextField(text, "analysis")
}

func extractTextField(text, key string) (string, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return "", err
	}
	var parsed map[string]string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	value, ok := parsed[key]
	if !ok || value == "" {
		return "", fmt.Errorf("AI response missing %q", key)
	}
	return value, nil
}
