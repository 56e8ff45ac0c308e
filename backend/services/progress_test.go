package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 67, Percentage(20, 30))
	assert.Equal(t, 100, Percentage(30, 30))
	assert.Equal(t, 100, Percentage(45, 30))
	assert.Equal(t, 0, Percentage(0, 30))

	// Zero target: any work counts as done, none as untouched.
	assert.Equal(t, 100, Percentage(5, 0))
	assert.Equal(t, 0, Percentage(0, 0))

	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 50, Percentage(1, 2))
}
