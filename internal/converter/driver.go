package converter

import (
	"context"
	stderrors "errors"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/livp123/shieldevt/pkg/errors"
)

type driverState int

const (
	stateHeader driverState = iota
	stateData
)

// Driver streams a LineSource into a LineSink: the first line is the header,
// every following line a data row. Rows are written in the order they are read.
// Driver 将 LineSource 流式写入 LineSink：第一行为表头，其余为数据行，按读取顺序输出。
type Driver struct {
	conv     *Converter
	observer Observer
	log      *zap.SugaredLogger
}

// Option configures a Driver.
type Option func(*Driver)

// WithObserver reports each handled line to o.
// WithObserver 将每一行的处理结果报告给 o。
func WithObserver(o Observer) Option {
	return func(d *Driver) {
		d.observer = o
	}
}

// WithLogger sets the logger used for per-row debug output.
// WithLogger 设置用于逐行调试输出的日志记录器。
func WithLogger(log *zap.SugaredLogger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

// NewDriver creates a Driver around conv.
// NewDriver 基于 conv 创建 Driver。
func NewDriver(conv *Converter, opts ...Option) *Driver {
	d := &Driver{
		conv: conv,
		log:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run converts src into sink until src reports io.EOF. The first line is the header and
// every further line is a data row, blank or not. Blank lines after the last non-blank line
// end the input and are dropped. The sink is closed exactly once before Run returns, on
// success and on failure.
// Run 将 src 转换写入 sink，直到 src 返回 io.EOF。第一行为表头，其余每一行（包括空行）都是数据行。
// 最后一个非空行之后的空行视为输入结束并被丢弃。无论成功或失败，sink 都会在返回前关闭一次。
func (d *Driver) Run(ctx context.Context, src LineSource, sink LineSink) (stats Stats, err error) {
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = errors.NewWriteError(stats.Lines, closeErr)
		}
	}()

	state := stateHeader
	// Blank lines are held back until a non-blank line shows they are not trailing.
	var pending []string
	for {
		line, readErr := src.ReadLine(ctx)
		if stderrors.Is(readErr, io.EOF) {
			for range pending {
				stats.Skipped++
				d.notifySkipped()
			}
			return stats, nil
		}
		if readErr != nil {
			return stats, errors.NewReadError(stats.Lines+1, readErr)
		}
		stats.Lines++

		if strings.TrimSpace(line) == "" {
			pending = append(pending, line)
			continue
		}

		first := stats.Lines - len(pending)
		for i, blank := range pending {
			if err := d.convert(&state, &stats, blank, first+i, sink); err != nil {
				return stats, err
			}
		}
		pending = pending[:0]

		if err := d.convert(&state, &stats, line, stats.Lines, sink); err != nil {
			return stats, err
		}
	}
}

// convert transforms one line according to state and writes it to sink.
func (d *Driver) convert(state *driverState, stats *Stats, line string, lineNo int, sink LineSink) error {
	var out string
	switch *state {
	case stateHeader:
		var renamed bool
		out, renamed = ConvertHeader(line)
		stats.HeaderWritten = true
		stats.HeaderRenamed = renamed
		if !renamed {
			d.log.Debugf("Header has no %s column (line %d)", EventTypeLabel, lineNo)
		}
		d.notifyHeader(renamed)
		*state = stateData
	case stateData:
		var valid bool
		out, valid = d.conv.ConvertDataLine(line)
		stats.Rows++
		if !valid {
			stats.InvalidTimestamps++
			d.log.Debugf("Line %d: timestamp does not match %s, using 0", lineNo, TimestampLayout)
		}
		d.notifyRow(valid)
	}

	if err := sink.WriteLine(out); err != nil {
		return errors.NewWriteError(lineNo, err)
	}
	return nil
}

func (d *Driver) notifyHeader(renamed bool) {
	if d.observer != nil {
		d.observer.ObserveHeader(renamed)
	}
}

func (d *Driver) notifyRow(valid bool) {
	if d.observer != nil {
		d.observer.ObserveRow(valid)
	}
}

func (d *Driver) notifySkipped() {
	if d.observer != nil {
		d.observer.ObserveSkipped()
	}
}
