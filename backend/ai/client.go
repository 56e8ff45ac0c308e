package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"studytrack/backend/config"
)

// Client talks to a Gemini-compatible generateContent endpoint. The
// configured API URL is the provider base (possibly ending in /v1); the
// real endpoint is always /v1beta/models/{model}:generateContent.
type Client struct {
	APIURL string
	APIKey string
	Model  string

	HTTPClient *http.Client
	Log        *log.Logger
}

var ErrNotConfigured = errors.New("AI configuration is incomplete")

func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		APIURL: cfg.AIAPIURL,
		APIKey: cfg.AIAPIKey,
		Model:  cfg.AIModel,
		// Analysis calls can run for minutes on large reports.
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
		Log:        logger,
	}
}

func (c *Client) configured() bool {
	return c.APIURL != "" && c.APIKey != "" && c.Model != ""
}

func (c *Client) endpoint(action string) string {
	base := strings.TrimRight(c.APIURL, "/")
	if idx := strings.Index(base, "/v1"); idx != -1 {
		base = base[:idx]
	}
	return fmt.Sprintf("%s/v1beta/models/%s:%s?key=%s", base, c.Model, action, url.QueryEscape(c.APIKey))
}

// Part is one content part of a request: either text or inline file data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// GenerationConfig mirrors the provider's generationConfig block.
type GenerationConfig struct {
	ResponseMimeType string      `json:"response_mime_type,omitempty"`
	ResponseSchema   interface{} `json:"response_schema,omitempty"`
	Temperature      float64     `json:"temperature"`
}

type generateRequest struct {
	Contents []struct {
		Parts []Part `json:"parts"`
	} `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent performs one non-streaming call and returns the text of
// the first candidate.
func (c *Client) GenerateContent(ctx context.Context, parts []Part, genCfg *GenerationConfig) (string, error) {
	if !c.configured() {
		return "", ErrNotConfigured
	}

	var reqBody generateRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []Part `json:"parts"`
	}{Parts: parts})
	reqBody.GenerationConfig = genCfg

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("generateContent"), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var detail bytes.Buffer
		detail.ReadFrom(resp.Body)
		return "", fmt.Errorf("AI API returned %d: %s", resp.StatusCode, detail.String())
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse AI response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("AI response contained no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateWithRetry retries transient call failures a few times before
// giving up; parse failures are not retried here.
func (c *Client) GenerateWithRetry(ctx context.Context, parts []Part, genCfg *GenerationConfig, attempts int, wait time.Duration) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := c.GenerateContent(ctx, parts, genCfg)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, ErrNotConfigured) {
			return "", err
		}
		lastErr = err
		c.Log.Printf("AI API call failed on attempt %d/%d: %v", attempt, attempts, err)
		if attempt < attempts {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return "", lastErr
}

// ExtractJSON pulls a JSON object out of a model response, preferring a
// fenced ```json block and falling back to the outermost brace pair.
func ExtractJSON(text string) (string, error) {
	if idx := strings.Index(text, "```json"); idx != -1 {
		rest := text[idx+len("```json"):]
		if end := strings.LastIndex(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end]), nil
		}
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON block found in AI response")
	}
	return strings.TrimSpace(text[start : end+1]), nil
}
