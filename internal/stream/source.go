package stream

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/livp123/shieldevt/pkg/errors"
)

const initialBufferSize = 64 * 1024

// ScannerSource reads newline-terminated lines (LF or CRLF) from a reader.
// ScannerSource 从 reader 中逐行读取（支持 LF 与 CRLF）。
type ScannerSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
	name    string
}

// NewScannerSource wraps r. Lines longer than maxLineBytes fail with bufio.ErrTooLong.
// NewScannerSource 包装 r，超过 maxLineBytes 的行会返回 bufio.ErrTooLong。
func NewScannerSource(r io.Reader, maxLineBytes int) *ScannerSource {
	scanner := bufio.NewScanner(r)
	initial := initialBufferSize
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)
	return &ScannerSource{scanner: scanner, name: "stdin"}
}

// OpenSource opens path for reading, or reads stdin when path is empty.
// OpenSource 打开 path 读取；path 为空时读取 stdin。
func OpenSource(path string, stdin io.Reader, maxLineBytes int) (*ScannerSource, error) {
	if path == "" {
		return NewScannerSource(stdin, maxLineBytes), nil
	}

	safePath := filepath.Clean(path)
	f, err := os.Open(safePath) // #nosec G304 // path is supplied by the operator
	if err != nil {
		return nil, errors.NewOpenInputError(path, err)
	}
	src := NewScannerSource(f, maxLineBytes)
	src.closer = f
	src.name = safePath
	return src, nil
}

// ReadLine returns the next line, io.EOF at end of input.
func (s *ScannerSource) ReadLine(_ context.Context) (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Name describes the source for logs.
func (s *ScannerSource) Name() string {
	return s.name
}

// Close releases the underlying file. Standard input is left open.
// Close 释放底层文件，标准输入保持打开。
func (s *ScannerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
