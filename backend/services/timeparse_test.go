package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmissionTime(t *testing.T) {
	t.Run("DottedDate", func(t *testing.T) {
		parsed, err := ParseSubmissionTime("2025.09.12 20:49")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 9, 12, 20, 49, 0, 0, time.UTC), parsed)
	})

	t.Run("WithSeconds", func(t *testing.T) {
		parsed, err := ParseSubmissionTime("2025-09-12 20:49:30")
		require.NoError(t, err)
		assert.Equal(t, 30, parsed.Second())
	})

	t.Run("Whitespace", func(t *testing.T) {
		_, err := ParseSubmissionTime("  2025-09-12 08:00  ")
		assert.NoError(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseSubmissionTime("昨天晚上")
		assert.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseSubmissionTime("")
		assert.Error(t, err)
	})
}

func TestNormalizeSubmissionTime(t *testing.T) {
	normalized, err := NormalizeSubmissionTime("2025.09.12 20:49")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-12 20:49:00", normalized)

	_, err = NormalizeSubmissionTime("not a time")
	assert.Error(t, err)
}

func TestAttributionWindow(t *testing.T) {
	t.Run("ClosedSecondBounds", func(t *testing.T) {
		start, end, err := attributionWindow("2025-09-12", "20:00", "21:00")
		require.NoError(t, err)
		assert.Equal(t, "2025-09-12 20:00:00", start.Format("2006-01-02 15:04:05"))
		assert.Equal(t, "2025-09-12 21:00:59", end.Format("2006-01-02 15:04:05"))
	})

	t.Run("MalformedClockFallsBackToWholeDay", func(t *testing.T) {
		start, end, err := attributionWindow("2025-09-12", "late", "")
		require.NoError(t, err)
		assert.Equal(t, "2025-09-12 00:00:00", start.Format("2006-01-02 15:04:05"))
		assert.Equal(t, "2025-09-12 23:59:59", end.Format("2006-01-02 15:04:05"))
	})
}

func TestClockOrDefault(t *testing.T) {
	assert.Equal(t, "09:30", clockOrDefault("09:30", "00:00"))
	assert.Equal(t, "00:00", clockOrDefault("", "00:00"))
	assert.Equal(t, "23:59", clockOrDefault("25:00", "23:59"))
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, durationMinutes("09:00", "10:30"))
	assert.Equal(t, 60, durationMinutes("bad", "10:30"))
	assert.Equal(t, 60, durationMinutes("", ""))
	// End before start is treated as an empty span, not a negative one.
	assert.Equal(t, 0, durationMinutes("10:30", "09:00"))
}
