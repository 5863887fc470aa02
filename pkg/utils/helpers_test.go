package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "abcdef", Truncate("abcdef", 6))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold([]string{"Python", "Go"}, "python"))
	assert.False(t, ContainsFold([]string{"Python"}, "Java"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", FormatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0m", FormatDuration(2*time.Minute))
}

func TestGetStringOrDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetStringOrDefault("", "fallback"))
	assert.Equal(t, "value", GetStringOrDefault("value", "fallback"))
}
