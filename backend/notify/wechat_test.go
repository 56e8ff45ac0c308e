package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/backend/models"
)

func TestSanitizeMarkdown(t *testing.T) {
	in := strings.Join([]string{
		"### 报告",
		"1. 第一点",
		"2. 第二点",
		"* 无序项",
		"- 另一项",
		"  * 缩进项",
		"普通文本",
	}, "\n")

	out := SanitizeMarkdown(in)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "### 报告", lines[0])
	assert.Equal(t, "(1) 第一点", lines[1])
	assert.Equal(t, "(2) 第二点", lines[2])
	assert.Equal(t, "• 无序项", lines[3])
	assert.Equal(t, "• 另一项", lines[4])
	assert.Equal(t, "  • 缩进项", lines[5])
	assert.Equal(t, "普通文本", lines[6])
}

func TestSplitChunks(t *testing.T) {
	t.Run("ShortContentSingleChunk", func(t *testing.T) {
		chunks := SplitChunks("短内容", 100)
		require.Len(t, chunks, 1)
		assert.Equal(t, "短内容", chunks[0])
	})

	t.Run("PrefersLineBoundaries", func(t *testing.T) {
		content := strings.Repeat("aaaa\n", 10)
		chunks := SplitChunks(strings.TrimSpace(content), 12)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 12)
		}
	})

	t.Run("NeverSplitsRunes", func(t *testing.T) {
		content := strings.Repeat("资料分析很重要", 200)
		chunks := SplitChunks(content, 100)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 100)
			assert.True(t, utf8.ValidString(c))
		}
		assert.Equal(t, content, strings.Join(chunks, ""))
	})

	t.Run("WhitespaceOnlyDropped", func(t *testing.T) {
		assert.Empty(t, SplitChunks("   \n  \n ", 4))
	})
}

func TestSendPayloadWithoutURL(t *testing.T) {
	s := NewSender("", nil)
	assert.NoError(t, s.SendPayload(map[string]string{"k": "v"}))
}

func TestSendMarkdown(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]interface{}{"errcode": 0, "errmsg": "ok"})
	}))
	defer server.Close()

	s := NewSender(server.URL, nil)
	require.NoError(t, s.SendMarkdown("### 测试\n\n1. 内容"))

	assert.Equal(t, "markdown", got["msgtype"])
	md := got["markdown"].(map[string]interface{})
	assert.Contains(t, md["content"], "(1) 内容")
}

func TestSendMarkdownWebhookRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"errcode": 93000, "errmsg": "invalid webhook url"})
	}))
	defer server.Close()

	s := NewSender(server.URL, nil)
	err := s.SendMarkdown("内容")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "93000")
}

func TestSendMarkdownChunking(t *testing.T) {
	var contents []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Markdown struct {
				Content string `json:"content"`
			} `json:"markdown"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		contents = append(contents, payload.Markdown.Content)
		json.NewEncoder(w).Encode(map[string]interface{}{"errcode": 0})
	}))
	defer server.Close()

	long := "### 长篇分析报告\n\n" + strings.Repeat("这一段话会重复很多次以撑过分块阈值。\n", 200)
	s := NewSender(server.URL, nil)
	require.NoError(t, s.SendMarkdown(long))

	require.Greater(t, len(contents), 1)
	assert.Contains(t, contents[0], "第 1/")
	for _, c := range contents {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, len(c), 4096)
	}
}

func TestTestPushRequiresURL(t *testing.T) {
	s := NewSender("", nil)
	assert.ErrorIs(t, s.TestPush(), ErrNoWebhook)
}

func TestAnalysisCard(t *testing.T) {
	record := &models.SubmissionRecord{
		PracticeType:         models.CategoryDataAnalysis,
		SubmissionTime:       "2025-09-12 20:49:00",
		CorrectAnswers:       12,
		QuestionsAnswered:    15,
		AccuracyRateAnswered: 0.8,
		Difficulty:           3.5,
	}

	payload := AnalysisCard(record, "http://127.0.0.1:5002/training?date=2025-09-12&goal_id=1")
	assert.Equal(t, "template_card", payload["msgtype"])

	card := payload["template_card"].(map[string]interface{})
	emphasis := card["emphasis_content"].(map[string]interface{})
	assert.Equal(t, "80.0%", emphasis["title"])

	jump := card["jump_list"].([]map[string]interface{})
	require.Len(t, jump, 1)
	assert.Contains(t, jump[0]["url"], "goal_id=1")

	rows := card["horizontal_content_list"].([]map[string]interface{})
	assert.Equal(t, "3.5", rows[1]["value"])
}

func TestAnalysisCardWithoutURL(t *testing.T) {
	payload := AnalysisCard(&models.SubmissionRecord{PracticeType: "言语理解与表达"}, "")
	card := payload["template_card"].(map[string]interface{})
	assert.NotContains(t, card, "jump_list")
	assert.NotContains(t, card, "card_action")
}
