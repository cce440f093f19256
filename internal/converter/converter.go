package converter

import (
	"strconv"
	"strings"
	"time"
)

// Converter rewrites single header and data lines. It holds no per-row state.
// Converter 负责改写单行表头和数据行，不保存任何行间状态。
type Converter struct {
	deriver *Deriver
}

// New creates a Converter deriving timestamps in loc (time.Local when nil).
// New 创建一个在 loc 时区派生时间戳的 Converter。
func New(loc *time.Location) *Converter {
	return &Converter{deriver: NewDeriver(loc)}
}

// ConvertHeader splits the header on bare commas, renames the first field equal to
// "EVENT_TYPE" (any case, quotes included) to "eventType" and appends the "timestamp" label.
// ConvertHeader 按逗号拆分表头，将第一个等于 "EVENT_TYPE"（不区分大小写，含引号）的字段
// 重命名为 "eventType"，并追加 "timestamp" 标签。
func ConvertHeader(line string) (string, bool) {
	fields := strings.Split(line, Separator)
	renamed := false
	for i, field := range fields {
		if strings.EqualFold(field, EventTypeLabel) {
			fields[i] = EventTypeRename
			renamed = true
			break
		}
	}
	return strings.Join(fields, Separator) + Separator + TimestampLabel, renamed
}

// ConvertDataLine returns line unchanged with `,"<millis>"` appended, where millis is derived
// from the second field. The second boolean is false when the sentinel 0 was used.
// ConvertDataLine 原样返回 line 并追加 `,"<毫秒>"`，毫秒值由第二个字段派生。
// 使用哨兵值 0 时第二个返回值为 false。
func (c *Converter) ConvertDataLine(line string) (string, bool) {
	var (
		millis int64
		valid  bool
	)
	// Only field 1 matters, so stop splitting after it.
	if fields := strings.SplitN(line, DataDelimiter, 3); len(fields) > 1 {
		stamp, err := c.deriver.Parse(strings.Trim(fields[1], Quote))
		if err == nil {
			millis, valid = stamp, true
		}
	}
	return line + Separator + Quote + strconv.FormatInt(millis, 10) + Quote, valid
}
