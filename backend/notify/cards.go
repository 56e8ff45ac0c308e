package notify

import (
	"fmt"

	"studytrack/backend/models"
)

// AnalysisCard builds the template_card payload pushed after a report is
// ingested. detailsURL should point at the training-details page for the
// record's goal; pass "" to omit the jump link and fall back to a plain
// card.
func AnalysisCard(record *models.SubmissionRecord, detailsURL string) map[string]interface{} {
	accuracy := fmt.Sprintf("%.1f%%", record.AccuracyRateAnswered*100)
	desc := fmt.Sprintf("正确率(已答): %s  (%d/%d)",
		accuracy, record.CorrectAnswers, record.QuestionsAnswered)

	card := map[string]interface{}{
		"card_type": "text_notice",
		"source": map[string]interface{}{
			"desc":       "学习进度追踪",
			"desc_color": 0,
		},
		"main_title": map[string]interface{}{
			"title": "练习分析完成",
			"desc":  record.PracticeType,
		},
		"emphasis_content": map[string]interface{}{
			"title": accuracy,
			"desc":  "已答正确率",
		},
		"sub_title_text": desc,
		"horizontal_content_list": []map[string]interface{}{
			{"keyname": "题型", "value": record.PracticeType},
			{"keyname": "难度", "value": formatDifficulty(record.Difficulty)},
			{"keyname": "提交时间", "value": orDash(record.SubmissionTime)},
		},
	}

	if detailsURL != "" {
		card["card_action"] = map[string]interface{}{
			"type": 1,
			"url":  detailsURL,
		}
		card["jump_list"] = []map[string]interface{}{
			{"type": 1, "title": "查看详细分析", "url": detailsURL},
		}
	}

	return map[string]interface{}{
		"msgtype":       "template_card",
		"template_card": card,
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatDifficulty(d float64) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", d)
}
