package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"filemcp/pkg/fileops"
)

// Kind classifies a search failure
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindFileAccess
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindFileAccess:
		return "FileAccessError"
	default:
		return "UnknownError"
	}
}

// Error is returned by every failing search. Its message is the one shown
// to the calling agent.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidArgument:
		return fmt.Sprintf("invalid argument: %v", e.Err)
	case KindFileAccess:
		return fmt.Sprintf("Error searching file: %v", e.Err)
	default:
		return "An unknown error occurred while searching the file"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument returns a KindInvalidArgument error with the given detail
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Err: fmt.Errorf(format, args...)}
}

// classify wraps a failure from reading path into an *Error
func classify(path string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	if isIOError(err) {
		return &Error{Kind: KindFileAccess, Path: path, Err: err}
	}
	return &Error{Kind: KindUnknown, Path: path, Err: err}
}

func isIOError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pathErr *fs.PathError
	var errno syscall.Errno
	return errors.As(err, &pathErr) ||
		errors.As(err, &errno) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, fileops.ErrFileTooLarge) ||
		errors.Is(err, fileops.ErrIsDirectory)
}

// KindOf reports the Kind of err, or KindUnknown if err is not an *Error
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func IsInvalidArgument(err error) bool { return err != nil && KindOf(err) == KindInvalidArgument }
func IsFileAccess(err error) bool      { return err != nil && KindOf(err) == KindFileAccess }
func IsUnknown(err error) bool         { return err != nil && KindOf(err) == KindUnknown }
