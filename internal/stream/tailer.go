package stream

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/nxadm/tail"

	"github.com/livp123/shieldevt/pkg/errors"
)

// FollowOptions controls how a followed file is watched.
// FollowOptions 控制被跟踪文件的监听方式。
type FollowOptions struct {
	Poll   bool // poll for changes instead of inotify
	ReOpen bool // reopen the file after rotation
}

// TailSource streams a file from its first line and keeps following appended lines
// until the context passed to ReadLine is canceled.
// TailSource 从文件第一行开始读取，并持续跟踪追加的行，直到 ReadLine 的 context 被取消。
type TailSource struct {
	tail *tail.Tail
	name string
}

// NewTailSource starts tailing filename, which must exist.
// NewTailSource 开始跟踪 filename（文件必须存在）。
func NewTailSource(filename string, opts FollowOptions) (*TailSource, error) {
	safePath := filepath.Clean(filename)
	config := tail.Config{
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Follow:    true,
		ReOpen:    opts.ReOpen, // Handle log rotation
		MustExist: true,
		Poll:      opts.Poll,
		Logger:    tail.DiscardingLogger,
	}

	t, err := tail.TailFile(safePath, config)
	if err != nil {
		return nil, errors.NewOpenInputError(filename, err)
	}
	return &TailSource{tail: t, name: safePath}, nil
}

// ReadLine blocks for the next line. A canceled context ends the stream with io.EOF.
// ReadLine 阻塞等待下一行，context 被取消时以 io.EOF 结束。
func (s *TailSource) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", io.EOF
	case line, ok := <-s.tail.Lines:
		if !ok {
			if err := s.tail.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		if line.Err != nil {
			return "", line.Err
		}
		return strings.TrimSuffix(line.Text, "\r"), nil
	}
}

// Name describes the source for logs.
func (s *TailSource) Name() string {
	return s.name
}

// Close stops the tailer and removes its watches.
// Close 停止跟踪并移除监听。
func (s *TailSource) Close() error {
	err := s.tail.Stop()
	s.tail.Cleanup()
	return err
}
