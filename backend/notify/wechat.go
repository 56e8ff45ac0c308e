package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// WeCom caps markdown messages at 4096 bytes; 3800 leaves headroom for
// the part header added when a long report is split.
const chunkSize = 3800

// Sender pushes markdown messages and template cards to a WeCom group-bot
// webhook. An empty webhook URL turns every send into a logged no-op.
type Sender struct {
	WebhookURL string
	HTTPClient *http.Client
	Log        *log.Logger
}

func NewSender(webhookURL string, logger *log.Logger) *Sender {
	if logger == nil {
		logger = log.Default()
	}
	return &Sender{
		WebhookURL: webhookURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Log:        logger,
	}
}

type webhookReply struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// SendPayload posts a pre-built payload (template cards etc.) verbatim.
func (s *Sender) SendPayload(payload interface{}) error {
	if s.WebhookURL == "" {
		s.Log.Printf("webhook URL not configured, dropping notification")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := s.HTTPClient.Post(s.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	var reply webhookReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("unreadable webhook reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK || reply.ErrCode != 0 {
		return fmt.Errorf("webhook rejected message: status=%d errcode=%d errmsg=%s",
			resp.StatusCode, reply.ErrCode, reply.ErrMsg)
	}
	return nil
}

// SendMarkdown sanitizes and sends a markdown message, splitting it into
// numbered parts when it exceeds the webhook's byte limit.
func (s *Sender) SendMarkdown(content string) error {
	content = SanitizeMarkdown(strings.TrimSpace(content))
	if len(content) <= chunkSize {
		return s.SendPayload(markdownPayload(content))
	}

	header := findHeader(content)
	maxContent := chunkSize - len(header) - 50
	chunks := SplitChunks(content, maxContent)

	var firstErr error
	for i, chunk := range chunks {
		partHeader := fmt.Sprintf("%s (第 %d/%d 部分)", header, i+1, len(chunks))
		var message string
		if strings.HasPrefix(strings.TrimSpace(chunk), "###") {
			message = strings.Replace(chunk, header, partHeader, 1)
		} else {
			message = partHeader + "\n\n" + chunk
		}
		if err := s.SendPayload(markdownPayload(message)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func markdownPayload(content string) map[string]interface{} {
	return map[string]interface{}{
		"msgtype":  "markdown",
		"markdown": map[string]string{"content": content},
	}
}

// findHeader picks the first "###" heading as the part header for split
// messages, with a generic fallback.
func findHeader(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "###") {
			return strings.TrimSpace(line)
		}
	}
	return "### AI分析报告"
}

var orderedListRe = regexp.MustCompile(`^(\d+)\.\s+`)

// SanitizeMarkdown rewrites markdown constructs the webhook does not
// render: ordered list markers become "(n) " and bullets become "• ".
func SanitizeMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	sanitized := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]

		if m := orderedListRe.FindStringSubmatch(trimmed); m != nil {
			sanitized = append(sanitized, indent+"("+m[1]+") "+trimmed[len(m[0]):])
			continue
		}
		if strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "- ") {
			sanitized = append(sanitized, indent+"• "+trimmed[2:])
			continue
		}
		sanitized = append(sanitized, line)
	}
	return strings.Join(sanitized, "\n")
}

// SplitChunks breaks content into pieces of at most max bytes, preferring
// line boundaries and never cutting through a multi-byte rune.
func SplitChunks(content string, max int) []string {
	if max <= 0 {
		return []string{content}
	}

	// First make every individual line fit.
	var safeLines []string
	for _, line := range strings.Split(content, "\n") {
		for len(line) > max {
			cut := splitPoint(line, max)
			safeLines = append(safeLines, line[:cut])
			line = line[cut:]
		}
		safeLines = append(safeLines, line)
	}

	// Then pack lines back into chunks.
	var chunks []string
	var current []string
	currentLen := 0
	for _, line := range safeLines {
		if currentLen+len(line)+1 > max && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = nil
			currentLen = 0
		}
		current = append(current, line)
		currentLen += len(line) + 1
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, "\n"))
	}

	// Drop whitespace-only chunks.
	final := chunks[:0]
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			final = append(final, c)
		}
	}
	if len(final) == 0 {
		return nil
	}
	return final
}

// splitPoint finds the largest byte offset <= max that lands on a rune
// boundary.
func splitPoint(s string, max int) int {
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		// A single rune longer than max cannot happen with any sane max,
		// but never loop forever.
		return max
	}
	return cut
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

var ErrNoWebhook = errors.New("webhook URL not configured")

// TestPush sends a fixed test message so the user can verify their
// webhook configuration. Unlike regular sends, a missing URL is an error
// here because the user explicitly asked for a push.
func (s *Sender) TestPush() error {
	if s.WebhookURL == "" {
		return ErrNoWebhook
	}
	return s.SendMarkdown(`### 企业微信推送测试

**状态**: <font color="info">成功</font>
这是一条测试消息，用于验证您的Webhook配置是否正确。`)
}
