package converter

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shielderrors "github.com/livp123/shieldevt/pkg/errors"
)

const (
	testStamp       = "20170729001030.906"
	testStampMillis = int64(1501301430906)
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// TestDeriver_Parse_Reference checks the reference timestamp from the event log samples
// TestDeriver_Parse_Reference 检查事件日志样例中的参考时间戳
func TestDeriver_Parse_Reference(t *testing.T) {
	d := NewDeriver(newYork(t))

	millis, err := d.Parse(testStamp)
	require.NoError(t, err)
	assert.Equal(t, testStampMillis, millis)

	got := time.UnixMilli(millis).In(d.Location())
	assert.Equal(t, 2017, got.Year())
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 29, got.Day())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 10, got.Minute())
	assert.Equal(t, 30, got.Second())
}

// TestDeriver_Parse_Valid covers conforming inputs
// TestDeriver_Parse_Valid 测试符合格式的输入
func TestDeriver_Parse_Valid(t *testing.T) {
	d := NewDeriver(time.UTC)

	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"utc reference", testStamp, 1501287030906},
		{"epoch", "19700101000000.0", 0},
		{"single fraction digit is milliseconds", "19700101000000.9", 9},
		{"leading zero fraction", "19700101000000.009", 9},
		{"fraction beyond a second carries", "19700101000000.1500", 1500},
		{"month rolls over", "20171301000000.0", 1514764800000},
		{"seconds roll over", "19700101000060.0", 60000},
		{"before epoch", "19691231235959.0", -1000},
		{"long fraction with leading zeros", "19700101000000.0000000906", 906},
		{"ten digit fraction", "19700101000000.1234567890", 1234567890},
		{"all zero fraction", "19700101000000.00000000000000000000", 0},
		{"eighteen significant fraction digits", "19700101000000.000123456789012345678", 123456789012345678},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestDeriver_Parse_Invalid covers non-conforming inputs
// TestDeriver_Parse_Invalid 测试不符合格式的输入
func TestDeriver_Parse_Invalid(t *testing.T) {
	d := NewDeriver(time.UTC)

	inputs := []string{
		"",
		"foo",
		"20170729001030",
		"20170729001030.",
		"2017072900103X.906",
		"20170729001030,906",
		"+0170729001030.906",
		"20170729001030.906Z",
		"20170729001030.-906",
		"20170729001030.1234567890123456789",
		"20170729001030.0000000906x",
		`"20170729001030.906"`,
		"2017-07-29T00:10:30.906Z",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := d.Parse(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, shielderrors.ErrInvalidTimestamp))
			assert.Equal(t, int64(0), got)
			assert.Equal(t, int64(0), d.Millis(input))
		})
	}
}

func TestDeriver_Millis(t *testing.T) {
	d := NewDeriver(newYork(t))

	assert.Equal(t, testStampMillis, d.Millis(testStamp))
	assert.Equal(t, int64(0), d.Millis("foo"))
}

func TestNewDeriver_DefaultLocation(t *testing.T) {
	assert.Equal(t, time.Local, NewDeriver(nil).Location())
	assert.Equal(t, time.UTC, NewDeriver(time.UTC).Location())
}
