package converter

import (
	"strings"
	"time"

	"github.com/livp123/shieldevt/pkg/errors"
)

// TimestampLayout is the event log timestamp pattern, e.g. 20170729001030.906.
// TimestampLayout 是事件日志的时间戳格式，例如 20170729001030.906。
const TimestampLayout = "yyyyMMddHHmmss.S"

const (
	stampDigits = 14
	// Significant fraction digits that still fit an int64.
	maxFractionDigits = 18
)

// Field widths of yyyy MM dd HH mm ss.
var stampWidths = [6]int{4, 2, 2, 2, 2, 2}

// Deriver turns event log timestamps into epoch milliseconds.
// Deriver 将事件日志时间戳转换为 Unix 毫秒时间。
type Deriver struct {
	loc *time.Location
}

// NewDeriver returns a Deriver reading wall-clock values in loc (time.Local when nil).
// NewDeriver 返回在 loc 时区解释时间的 Deriver（nil 时使用 time.Local）。
func NewDeriver(loc *time.Location) *Deriver {
	if loc == nil {
		loc = time.Local
	}
	return &Deriver{loc: loc}
}

// Location returns the zone used to interpret timestamps.
func (d *Deriver) Location() *time.Location {
	return d.loc
}

// Parse converts s, which must match TimestampLayout exactly.
// The fraction after the dot is a millisecond count, so ".9" is 9ms and ".906" is 906ms.
// Out-of-range calendar fields roll over instead of failing. The fraction may have any
// number of digits (".0000000906" is 906ms) as long as its value fits an int64.
// Parse 转换 s，s 必须完全符合 TimestampLayout。
// 小数点后的部分按毫秒数解释，超出范围的日期字段会自动进位。
func (d *Deriver) Parse(s string) (int64, error) {
	if len(s) < stampDigits+2 || s[stampDigits] != '.' {
		return 0, errors.NewTimestampError(s)
	}

	var parts [6]int
	pos := 0
	for i, width := range stampWidths {
		n, ok := atoiDigits(s[pos : pos+width])
		if !ok {
			return 0, errors.NewTimestampError(s)
		}
		parts[i] = int(n)
		pos += width
	}

	// Any run of digits is accepted; leading zeros do not count toward the limit.
	fraction := s[stampDigits+1:]
	if len(strings.TrimLeft(fraction, "0")) > maxFractionDigits {
		return 0, errors.NewTimestampError(s)
	}
	millis, ok := atoiDigits(fraction)
	if !ok {
		return 0, errors.NewTimestampError(s)
	}

	t := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, d.loc)
	return t.UnixMilli() + millis, nil
}

// Millis is Parse with the sentinel 0 substituted for unparsable input.
// Millis 与 Parse 相同，但无法解析时返回哨兵值 0。
func (d *Deriver) Millis(s string) int64 {
	millis, err := d.Parse(s)
	if err != nil {
		return 0
	}
	return millis
}

// atoiDigits parses a non-empty run of ASCII digits. Signs are rejected.
func atoiDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	return n, true
}
