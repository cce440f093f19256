package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUsage            = errors.New("usage error")
	ErrMissingValue     = errors.New("Expected a value, none found! Flag:")
	ErrExpectedValue    = errors.New("Expected a value, found a flag instead:")
	ErrInvalidFlag      = errors.New("Invalid Flag:")
	ErrOpenInput        = errors.New("cannot open input")
	ErrOpenOutput       = errors.New("cannot open output")
	ErrRead             = errors.New("read failed")
	ErrWrite            = errors.New("write failed")
	ErrConfigNotFound   = errors.New("config not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// UsageError marks an error caused by bad command-line input.
// UsageError 标记由错误的命令行输入引起的错误。
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() []error {
	return []error{ErrUsage, e.Err}
}

// IsUsage reports whether err was caused by bad command-line input.
// IsUsage 报告错误是否由错误的命令行输入引起。
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

func NewMissingValueError(flag string) error {
	return &UsageError{Err: fmt.Errorf("%w %s", ErrMissingValue, flag)}
}

func NewExpectedValueError(value string) error {
	return &UsageError{Err: fmt.Errorf("%w %s", ErrExpectedValue, value)}
}

func NewInvalidFlagError(reason error) error {
	return &UsageError{Err: fmt.Errorf("%w %v", ErrInvalidFlag, reason)}
}

func NewOpenInputError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrOpenInput, path, reason)
}

func NewOpenOutputError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrOpenOutput, path, reason)
}

func NewReadError(line int, reason error) error {
	return fmt.Errorf("%w: line %d: %v", ErrRead, line, reason)
}

func NewWriteError(line int, reason error) error {
	return fmt.Errorf("%w: line %d: %v", ErrWrite, line, reason)
}

func NewTimestampError(value string) error {
	return fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}
