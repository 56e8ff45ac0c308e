package models

// Practice categories of the administrative aptitude test (行测). The
// category string stored on a record must match one of these values, or a
// custom goal type the user typed in.
const (
	CategoryVerbalComprehension    = "言语理解与表达"
	CategoryQuantitativeRelations  = "数量关系"
	CategoryJudgementReasoning     = "判断推理"
	CategoryDataAnalysis           = "资料分析"
	CategoryCommonSense            = "常识判断"
	CategoryGraphicalReasoning     = "图形推理"
	CategorySpecialIntelligent     = "专项智能练习"
	CategoryMockExam               = "行测全真模拟考试 (摸底测试)"
)

// TrainingKeywords marks a schedule item as a study session when any of
// them appears in its activity or details text.
var TrainingKeywords = []string{
	"训练", "学习", "测试", "复盘", "模考", "专项",
	"言语", "数量", "判断", "资料", "常识",
}

// CanonicalCategoryNames maps the shortened names the AI (or the user)
// tends to produce onto the canonical category values.
var CanonicalCategoryNames = map[string]string{
	"言语理解":     CategoryVerbalComprehension,
	"数量关系":     CategoryQuantitativeRelations,
	"判断推理":     CategoryJudgementReasoning,
	"资料分析":     CategoryDataAnalysis,
	"常识判断":     CategoryCommonSense,
	"图形推理":     CategoryGraphicalReasoning,
	"专项智能":     CategorySpecialIntelligent,
	"行测全真模拟考试": CategoryMockExam,
	"模考":       CategoryMockExam,
}

// SubjectKeywords maps the short subject markers found in a review item's
// details text onto the canonical category to review.
var SubjectKeywords = map[string]string{
	"言语": CategoryVerbalComprehension,
	"数量": CategoryQuantitativeRelations,
	"判断": CategoryJudgementReasoning,
	"资料": CategoryDataAnalysis,
	"常识": CategoryCommonSense,
	"图形": CategoryGraphicalReasoning,
}

// ReviewMarkers identify a goal as a mistake-review session; its target
// question count is derived from accumulated mistakes, never stored.
var ReviewMarkers = []string{"复盘", "错题"}
