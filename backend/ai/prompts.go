package ai

import (
	"encoding/json"
	"fmt"

	"studytrack/backend/models"
)

func marshalIndent(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

// fileAnalysisPrompt instructs the model to read one exercise report and
// emit the AnalysisReport JSON shape. When a goal is supplied the model
// additionally grades the session with a completion score.
func fileAnalysisPrompt(filename string, goal *models.Goal) string {
	goalSection := ""
	if goal != nil {
		goalSection = fmt.Sprintf(`
**User's Training Goal:**
- Target Questions: %d
- Target Accuracy: %d%%
- Target Time (minutes): %d

**Mandatory Task: Completion Score Calculation**
Add an integer field "completion_score" (0-100) to the root of the JSON
output, grading this session against the goal:
1. Base score (70 max): accuracy component (actual/target accuracy * 40,
   cap 40) plus volume component (answered/target questions * 30, cap 30).
2. Efficiency score (30 max): start at 30; if total time exceeds the
   target, subtract ((total-target)/target)*20; add 10 when total time is
   under 80%% of target with accuracy at or above target.
3. Final score: rounded sum, capped at 100.
`, goal.TargetQuestions, goal.TargetAccuracy, goal.TargetTimeMinutes)
	}

	return fmt.Sprintf(`You are a strict and meticulous civil service exam training analyst.
Analyze the provided document, which contains a user's completed exercise,
and extract all key metrics into the specified JSON format. The output
MUST be a single JSON object.

The submitted file is named '%s'; include it in report_metadata.filename.
If the report does not show a submission timestamp, set
report_metadata.timestamp to "USE_CURRENT_TIME".

**JSON Output Structure:**
{
  "report_metadata": {"filename": "...", "timestamp": "...", "subject": "...", "difficulty": ...},
  "performance_summary": {"total_questions": ..., "correct_answers": ..., "incorrect_answers": ..., "unanswered_questions": ..., "total_time_minutes": ...},
  "incorrect_question_numbers": [...],
  "answer_card": {...},
  "ability_analysis": {...}
}
%s`, filename, goalSection)
}

// AdjustmentContext is everything the schedule-adjustment prompt needs.
type AdjustmentContext struct {
	Date        string
	MultiDay    map[string]DayContext
	History     []models.SubmissionRecord
	UserRequest string
	// Optional user-provided constraint prompts (course schedule, exam
	// requirements) generated by the prompt-upload workflow.
	CoursePrompt string
	ExamPrompt   string
}

// DayContext is one day's goals plus detailed schedule handed to the AI.
type DayContext struct {
	StudyGoals       []models.Goal         `json:"study_goals"`
	DetailedSchedule []models.ScheduleItem `json:"detailed_schedule"`
}

// scheduleAdjustmentPrompt asks the model to rework the multi-day plan in
// response to the user's request, keeping the fixed activity grammar and
// the weekend-only mock exam rule.
func scheduleAdjustmentPrompt(c AdjustmentContext) string {
	return fmt.Sprintf(`You are a world-class AI assistant and expert study coach. Your goal is
to create a smart, adaptive, data-driven study plan. Respond as
efficiently as possible.

**Core Directives (Strictly Follow):**
1. Course schedule constraints:
%s
2. Exam requirements:
%s

**Context:**
1. Today's date: %s
2. User's multi-day plan and goals:
%s
3. User's historical performance:
%s
4. User's immediate request: "%s"

**Mandatory Instructions:**
1. Dual-focus adjustments: requests about time or activities modify the
   schedule items; requests about performance targets modify the matching
   goal object (target_questions, target_accuracy, target_time_minutes).
   Never confuse the two.
2. Data-driven planning: identify weak points in the history and schedule
   targeted training sessions for them.
3. When cancelling a session, reschedule the missed content instead of
   deleting it, and never overwrite unrelated activities (起床, 睡觉).
4. Every schedule item must carry "start_time" and "end_time" (45-90
   minute study blocks).
5. The "activity" string contains ONLY "Category-SubCategory"; the
   category must be one of ["深度复盘", "言语理解与表达", "数量关系", "判断推理",
   "资料分析", "常识判断", "早饭", "午饭", "午休", "晚饭", "睡觉", "模拟测试", "特殊", "上课"].
   Descriptive text goes in "details" (use "" when none; never fabricate).
6. A "深度复盘" item is only valid when at least one training activity
   precedes it since the previous review; an invalid one must be turned
   into "特殊-特殊" with details "无效的深度复盘：缺少复盘所需的训练内容", explained in
   the suggestion.
7. "模拟测试" may ONLY be scheduled on a Saturday or Sunday.

**Output Format:**
A single valid JSON object with THREE keys:
1. "suggestion": a multi-line string summarizing all changes and reasons.
2. "updated_schedules": object keyed by date (YYYY-MM-DD); each value is
   the complete new schedule item array for that day, sorted by start
   time, items carrying "start_time", "end_time", "activity", "details".
3. "updated_goals": object keyed by date; each value is the complete new
   goal array for that day. Include ONLY when a goal target changed.

Wrap the entire JSON output in a single `+"```json ... ```"+` code block.`,
		c.CoursePrompt, c.ExamPrompt, c.Date,
		marshalIndent(c.MultiDay), marshalIndent(c.History), c.UserRequest)
}

// comprehensivePrompt asks for a coaching report over today's plan and
// recent history. The model must analyze and suggest, never emit a plan.
func comprehensivePrompt(plan *models.StudyPlan, history []models.SubmissionRecord) string {
	return fmt.Sprintf(`You are a professional civil service exam coach. Based on the user's
study plan and historical performance data, provide a comprehensive
analysis and suggest plan adjustments for today.

**CRITICAL RULE: the entire response, especially "analysis_text", MUST be
in Chinese.**

**Today's Plan:**
%s

**Historical Performance Data:**
%s

Return a JSON object with exactly one key, "analysis_text": a detailed,
encouraging analysis covering accuracy trends, speed, and time
management, with concrete suggestions expressed in text. Do NOT output a
new or adjusted plan object.`,
		marshalIndent(plan), marshalIndent(history))
}

// dashboardPrompt asks for a three-part strategic report over aggregated
// all-time performance data.
func dashboardPrompt(aggregates interface{}) string {
	return fmt.Sprintf(`You are an expert data analyst and strategic learning coach for a civil
service exam candidate. The entire response MUST be in Chinese.

**Aggregated Performance Data:**
%s

Your analysis must cover three dimensions: past performance summary
(回顾过去), current standing assessment (立足现在), and future projections
with concrete, targeted recommendations (展望未来).

Return a single JSON object with one key, "analysis": a well-structured
markdown report in Chinese.`, marshalIndent(aggregates))
}
