package stream

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/livp123/shieldevt/internal/converter"
	"github.com/livp123/shieldevt/pkg/errors"
)

// WriterSink writes `\n`-terminated lines through a buffer.
// WriterSink 通过缓冲区写入以 `\n` 结尾的行。
type WriterSink struct {
	w         *bufio.Writer
	closer    io.Closer
	name      string
	autoFlush bool
	closed    bool
}

// NewWriterSink wraps w. When autoFlush is set every line is flushed immediately,
// which follow mode needs so downstream readers see rows as they arrive.
// NewWriterSink 包装 w。autoFlush 为 true 时每行立即刷新（follow 模式需要）。
func NewWriterSink(w io.Writer, autoFlush bool) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), name: "stdout", autoFlush: autoFlush}
}

// OpenSink creates (or truncates) path, or writes to stdout when path is empty.
// OpenSink 创建（或截断）path；path 为空时写入 stdout。
func OpenSink(path string, stdout io.Writer, autoFlush bool) (*WriterSink, error) {
	if path == "" {
		return NewWriterSink(stdout, autoFlush), nil
	}

	safePath := filepath.Clean(path)
	f, err := os.OpenFile(safePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644) // #nosec G302 G304 // output path is supplied by the operator
	if err != nil {
		return nil, errors.NewOpenOutputError(path, err)
	}
	sink := NewWriterSink(f, autoFlush)
	sink.closer = f
	sink.name = safePath
	return sink, nil
}

// WriteLine writes line followed by a newline.
func (s *WriterSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return err
	}
	if _, err := s.w.WriteString(converter.Newline); err != nil {
		return err
	}
	if s.autoFlush {
		return s.w.Flush()
	}
	return nil
}

// Name describes the sink for logs.
func (s *WriterSink) Name() string {
	return s.name
}

// Close flushes buffered output and closes the file, if any. Repeated calls are no-ops.
// Close 刷新缓冲并关闭文件（如有），重复调用无副作用。
func (s *WriterSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.w.Flush()
	if s.closer != nil {
		if closeErr := s.closer.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
