package converter

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shielderrors "github.com/livp123/shieldevt/pkg/errors"
)

// sliceSource replays lines, then returns err (io.EOF when nil).
type sliceSource struct {
	lines []string
	err   error
}

func (s *sliceSource) ReadLine(_ context.Context) (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// bufferSink collects written lines and counts Close calls.
type bufferSink struct {
	sb        strings.Builder
	closed    int
	failAfter int // fail writes once this many lines were written; 0 disables
	written   int
	closeErr  error
}

func (s *bufferSink) WriteLine(line string) error {
	if s.failAfter > 0 && s.written >= s.failAfter {
		return io.ErrShortWrite
	}
	s.written++
	s.sb.WriteString(line)
	s.sb.WriteString(Newline)
	return nil
}

func (s *bufferSink) Close() error {
	s.closed++
	return s.closeErr
}

type countingObserver struct {
	headers, renamed, rows, invalid, skipped int
}

func (o *countingObserver) ObserveHeader(renamed bool) {
	o.headers++
	if renamed {
		o.renamed++
	}
}

func (o *countingObserver) ObserveRow(valid bool) {
	o.rows++
	if !valid {
		o.invalid++
	}
}

func (o *countingObserver) ObserveSkipped() {
	o.skipped++
}

// TestDriver_EndToEnd converts a header and one row
// TestDriver_EndToEnd 转换表头和一行数据
func TestDriver_EndToEnd(t *testing.T) {
	d := NewDriver(New(newYork(t)))
	src := &sliceSource{lines: []string{header1, data1}}
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), src, sink)
	require.NoError(t, err)

	want := strings.Replace(header1, `"EVENT_TYPE"`, `"eventType"`, 1) + `,"timestamp"` + "\n" +
		data1 + `,"1501301430906"` + "\n"
	assert.Equal(t, want, sink.sb.String())
	assert.Equal(t, 1, sink.closed)
	assert.Equal(t, Stats{Lines: 2, Rows: 1, HeaderWritten: true, HeaderRenamed: true}, stats)
}

// TestDriver_EmptyInput produces no output for an empty source
// TestDriver_EmptyInput 空输入不产生任何输出
func TestDriver_EmptyInput(t *testing.T) {
	d := NewDriver(New(time.UTC))
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), &sliceSource{}, sink)
	require.NoError(t, err)

	assert.Empty(t, sink.sb.String())
	assert.Equal(t, 1, sink.closed)
	assert.False(t, stats.HeaderWritten)
}

// TestDriver_HeaderOnly writes only the rewritten header
// TestDriver_HeaderOnly 仅输出改写后的表头
func TestDriver_HeaderOnly(t *testing.T) {
	d := NewDriver(New(time.UTC))
	sink := &bufferSink{}

	_, err := d.Run(context.Background(), &sliceSource{lines: []string{`"TIMESTAMP"`}}, sink)
	require.NoError(t, err)

	assert.Equal(t, `"TIMESTAMP","timestamp"`+"\n", sink.sb.String())
}

// TestDriver_InteriorBlankLines emits blank rows in the middle of the stream with the sentinel
// and drops only the trailing ones
// TestDriver_InteriorBlankLines 中间的空行按哨兵值输出，仅丢弃末尾空行
func TestDriver_InteriorBlankLines(t *testing.T) {
	obs := &countingObserver{}
	d := NewDriver(New(time.UTC), WithObserver(obs))
	src := &sliceSource{lines: []string{`"EVENT_TYPE","TIMESTAMP"`, ``, `"Logout","20170729001030.906"`, `   `}}
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), src, sink)
	require.NoError(t, err)

	want := `"eventType","TIMESTAMP","timestamp"` + "\n" +
		`,"0"` + "\n" +
		`"Logout","20170729001030.906","1501287030906"` + "\n"
	assert.Equal(t, want, sink.sb.String())
	assert.Equal(t, Stats{Lines: 4, Rows: 2, Skipped: 1, InvalidTimestamps: 1, HeaderWritten: true, HeaderRenamed: true}, stats)
	assert.Equal(t, &countingObserver{headers: 1, renamed: 1, rows: 2, invalid: 1, skipped: 1}, obs)
}

// TestDriver_BlankFirstLine takes the first line as the header even when it is blank
// TestDriver_BlankFirstLine 第一行即使为空也作为表头
func TestDriver_BlankFirstLine(t *testing.T) {
	d := NewDriver(New(time.UTC))
	src := &sliceSource{lines: []string{``, `"A","19700101000000.5"`, ``, ``, `"B","foo"`}}
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), src, sink)
	require.NoError(t, err)

	want := `,"timestamp"` + "\n" +
		`"A","19700101000000.5","5"` + "\n" +
		`,"0"` + "\n" +
		`,"0"` + "\n" +
		`"B","foo","0"` + "\n"
	assert.Equal(t, want, sink.sb.String())
	assert.Equal(t, Stats{Lines: 5, Rows: 4, InvalidTimestamps: 3, HeaderWritten: true}, stats)
}

// TestDriver_OnlyBlankLines produces no output when no line has content
// TestDriver_OnlyBlankLines 所有行均为空时不产生输出
func TestDriver_OnlyBlankLines(t *testing.T) {
	obs := &countingObserver{}
	d := NewDriver(New(time.UTC), WithObserver(obs))
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), &sliceSource{lines: []string{``, `  `, "\t"}}, sink)
	require.NoError(t, err)

	assert.Empty(t, sink.sb.String())
	assert.Equal(t, Stats{Lines: 3, Skipped: 3}, stats)
	assert.Equal(t, 3, obs.skipped)
	assert.Equal(t, 1, sink.closed)
}

// TestDriver_BlankRowWriteError reports the line number of a held-back blank row
// TestDriver_BlankRowWriteError 报告延后写入的空行的行号
func TestDriver_BlankRowWriteError(t *testing.T) {
	d := NewDriver(New(time.UTC))
	src := &sliceSource{lines: []string{header1, ``, data1}}
	sink := &bufferSink{failAfter: 1}

	_, err := d.Run(context.Background(), src, sink)
	require.Error(t, err)

	assert.True(t, errors.Is(err, shielderrors.ErrWrite))
	assert.Contains(t, err.Error(), "line 2")
}

// TestDriver_KeepsOrder emits rows in read order, including rows with bad timestamps
// TestDriver_KeepsOrder 按读取顺序输出，包括时间戳错误的行
func TestDriver_KeepsOrder(t *testing.T) {
	d := NewDriver(New(time.UTC))
	lines := []string{`"EVENT_TYPE","TIMESTAMP"`}
	for _, ts := range []string{"19700101000003.0", "bad", "19700101000001.0", "19700101000002.0"} {
		lines = append(lines, `"E","`+ts+`"`)
	}
	sink := &bufferSink{}

	_, err := d.Run(context.Background(), &sliceSource{lines: lines}, sink)
	require.NoError(t, err)

	out := strings.Split(strings.TrimSuffix(sink.sb.String(), "\n"), "\n")
	require.Len(t, out, 5)
	assert.True(t, strings.HasSuffix(out[1], `,"3000"`))
	assert.True(t, strings.HasSuffix(out[2], `,"0"`))
	assert.True(t, strings.HasSuffix(out[3], `,"1000"`))
	assert.True(t, strings.HasSuffix(out[4], `,"2000"`))
}

// TestDriver_ReadError propagates source failures and still closes the sink
// TestDriver_ReadError 传播读取错误并仍然关闭 sink
func TestDriver_ReadError(t *testing.T) {
	d := NewDriver(New(time.UTC))
	src := &sliceSource{lines: []string{header1}, err: io.ErrUnexpectedEOF}
	sink := &bufferSink{}

	stats, err := d.Run(context.Background(), src, sink)
	require.Error(t, err)

	assert.True(t, errors.Is(err, shielderrors.ErrRead))
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, stats.Lines)
	assert.Equal(t, 1, sink.closed)
}

// TestDriver_WriteError propagates sink failures and still closes the sink
// TestDriver_WriteError 传播写入错误并仍然关闭 sink
func TestDriver_WriteError(t *testing.T) {
	d := NewDriver(New(time.UTC))
	src := &sliceSource{lines: []string{header1, data1, data2}}
	sink := &bufferSink{failAfter: 1}

	_, err := d.Run(context.Background(), src, sink)
	require.Error(t, err)

	assert.True(t, errors.Is(err, shielderrors.ErrWrite))
	assert.Equal(t, 1, sink.closed)
}

// TestDriver_CloseError reports a failed flush on an otherwise clean run
// TestDriver_CloseError 在其他步骤成功时报告刷新失败
func TestDriver_CloseError(t *testing.T) {
	d := NewDriver(New(time.UTC))
	sink := &bufferSink{closeErr: io.ErrClosedPipe}

	_, err := d.Run(context.Background(), &sliceSource{lines: []string{header1}}, sink)
	require.Error(t, err)

	assert.True(t, errors.Is(err, shielderrors.ErrWrite))
	assert.Equal(t, 1, sink.closed)
}
