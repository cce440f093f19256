// Package fmtutil formats run counters for log output.
// Package fmtutil 为日志输出格式化运行计数。
package fmtutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatCount formats a counter with thousand separators.
// FormatCount 格式化计数，添加千位分隔符。
func FormatCount(n int) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatDuration formats an elapsed time, rounding to milliseconds below a minute.
// FormatDuration 格式化耗时，一分钟以内精确到毫秒。
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Round(time.Millisecond).String()
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}

// FormatRate formats n items over d as a per-second rate.
// FormatRate 将 d 内的 n 个条目格式化为每秒速率。
func FormatRate(n int, d time.Duration, unit string) string {
	if d <= 0 {
		return "n/a"
	}
	rate := float64(n) / d.Seconds()
	return fmt.Sprintf("%s %s/s", FormatCount(int(rate+0.5)), unit)
}

// Summary renders the one-line completion message of a conversion run.
// Summary 生成转换运行结束时的单行摘要。
func Summary(rows, invalid, skipped int, elapsed time.Duration) string {
	return fmt.Sprintf("%s rows (%s without timestamp, %s blank) in %s, %s",
		FormatCount(rows), FormatCount(invalid), FormatCount(skipped),
		FormatDuration(elapsed), FormatRate(rows, elapsed, "rows"))
}
