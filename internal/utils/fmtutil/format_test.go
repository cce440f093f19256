package fmtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestFormatCount tests FormatCount function
// TestFormatCount 测试 FormatCount 函数
func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{100000, "100,000"},
		{1234567890, "1,234,567,890"},
		{-1500, "-1,500"},
	}

	for _, tt := range tests {
		result := FormatCount(tt.input)
		assert.Equal(t, tt.expected, result, "FormatCount(%d) = %s, want %s", tt.input, result, tt.expected)
	}
}

// TestFormatDuration tests FormatDuration function
// TestFormatDuration 测试 FormatDuration 函数
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{1500 * time.Microsecond, "2ms"},
		{1234 * time.Millisecond, "1.234s"},
		{90 * time.Second, "1m 30s"},
		{25*time.Hour + 2*time.Minute, "25h 2m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.input), "FormatDuration(%v)", tt.input)
	}
}

// TestFormatRate tests FormatRate function
// TestFormatRate 测试 FormatRate 函数
func TestFormatRate(t *testing.T) {
	assert.Equal(t, "2,000 rows/s", FormatRate(1000, 500*time.Millisecond, "rows"))
	assert.Equal(t, "n/a", FormatRate(10, 0, "rows"))
}

// TestSummary tests Summary function
// TestSummary 测试 Summary 函数
func TestSummary(t *testing.T) {
	got := Summary(1500, 2, 1, 3*time.Second)
	assert.Equal(t, "1,500 rows (2 without timestamp, 1 blank) in 3s, 500 rows/s", got)
}
