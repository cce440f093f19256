package converter

import "context"

const (
	// Separator joins header fields.
	// Separator 用于连接表头字段。
	Separator = ","

	// DataDelimiter splits data rows.
	// DataDelimiter 用于拆分数据行。
	DataDelimiter = `","`

	// Quote wraps every field on the wire.
	// Quote 是包裹每个字段的引号。
	Quote = `"`

	// EventTypeLabel is the header label renamed for the ingester (compared case-insensitively).
	// EventTypeLabel 是需要为采集端重命名的表头标签（不区分大小写比较）。
	EventTypeLabel = `"EVENT_TYPE"`

	// EventTypeRename replaces EventTypeLabel in the output header.
	// EventTypeRename 在输出表头中替换 EventTypeLabel。
	EventTypeRename = `"eventType"`

	// TimestampLabel is the label of the derived trailing column.
	// TimestampLabel 是追加的派生列的标签。
	TimestampLabel = `"timestamp"`

	// Newline terminates every output line.
	// Newline 是每个输出行的结束符。
	Newline = "\n"
)

// LineSource yields input lines without their terminators.
// ReadLine returns io.EOF once the input is exhausted.
// LineSource 逐行提供输入（不含行结束符），输入结束时 ReadLine 返回 io.EOF。
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// LineSink receives output lines. Close flushes and releases the sink.
// LineSink 接收输出行，Close 负责刷新并释放资源。
type LineSink interface {
	WriteLine(line string) error
	Close() error
}

// Observer is notified of every line the driver handles.
// Observer 在驱动处理每一行时收到通知。
type Observer interface {
	ObserveHeader(renamed bool)
	ObserveRow(validTimestamp bool)
	ObserveSkipped()
}

// Stats summarizes one conversion run.
// Stats 汇总一次转换运行的结果。
type Stats struct {
	Lines             int  // physical lines read
	Rows              int  // data rows written
	Skipped           int  // trailing blank lines dropped
	InvalidTimestamps int  // rows that received the sentinel 0
	HeaderWritten     bool // false when the input was empty
	HeaderRenamed     bool
}
