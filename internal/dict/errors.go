package dict

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrFileAccess      = errors.New("file access error")
	ErrFileTooLarge    = errors.New("file too large")
	ErrBackendAccess   = errors.New("backend access error")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Error carries the kind of a failure together with the operation and its cause.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("failed to %s: %s", e.Op, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return e != nil && e.Kind == target
}

func fileError(op, path string, err error) error {
	return &Error{Kind: ErrFileAccess, Op: op, Path: path, Err: err}
}

func backendError(op, name string, err error) error {
	return &Error{Kind: ErrBackendAccess, Op: op, Path: name, Err: err}
}

// InvalidArgument reports caller misuse such as a malformed option value.
func InvalidArgument(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Err: fmt.Errorf(format, args...)}
}
