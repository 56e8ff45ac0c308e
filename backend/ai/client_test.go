package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint(t *testing.T) {
	c := &Client{APIURL: "https://api.example.com/v1", APIKey: "secret", Model: "gemini-2.5-pro"}
	assert.Equal(t,
		"https://api.example.com/v1beta/models/gemini-2.5-pro:generateContent?key=secret",
		c.endpoint("generateContent"))

	// No /v1 suffix to strip.
	c.APIURL = "https://api.example.com"
	assert.Equal(t,
		"https://api.example.com/v1beta/models/gemini-2.5-pro:generateContent?key=secret",
		c.endpoint("generateContent"))

	// Trailing slash.
	c.APIURL = "https://api.example.com/v1/"
	assert.Contains(t, c.endpoint("generateContent"), "https://api.example.com/v1beta/")
}

func TestGenerateContentUnconfigured(t *testing.T) {
	c := &Client{}
	_, err := c.GenerateContent(context.Background(), []Part{{Text: "hi"}}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "你好"}},
				}},
			},
		})
	}))
	defer server.Close()

	c := &Client{
		APIURL:     server.URL,
		APIKey:     "k",
		Model:      "m",
		HTTPClient: server.Client(),
	}

	text, err := c.GenerateContent(context.Background(), []Part{{Text: "打个招呼"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "你好", text)
}

func TestGenerateContentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := &Client{APIURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	_, err := c.GenerateContent(context.Background(), []Part{{Text: "hi"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateWithRetry(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "ok"}},
				}},
			},
		})
	}))
	defer server.Close()

	c := &Client{APIURL: server.URL, APIKey: "k", Model: "m", HTTPClient: server.Client()}
	text, err := c.GenerateWithRetry(context.Background(), []Part{{Text: "hi"}}, nil, 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, calls)
}

func TestExtractJSON(t *testing.T) {
	t.Run("FencedBlock", func(t *testing.T) {
		raw, err := ExtractJSON("前言\n```json\n{\"a\": 1}\n```\n后记")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a": 1}`, raw)
	})

	t.Run("BareBraces", func(t *testing.T) {
		raw, err := ExtractJSON(`模型说: {"a": {"b": 2}} 完毕`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"a": {"b": 2}}`, raw)
	})

	t.Run("NoJSON", func(t *testing.T) {
		_, err := ExtractJSON("抱歉，我无法处理这个请求。")
		assert.Error(t, err)
	})
}
