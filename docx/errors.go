package docx

import (
	"errors"
	"fmt"
)

// ErrorKind classifies builder failures.
type ErrorKind int

const (
	// InvalidArgument - caller supplied value outside of accepted domain.
	InvalidArgument ErrorKind = iota + 1
	// ResourceUnavailable - file system object could not be read or written.
	ResourceUnavailable
	// SerializationFailure - package could not be produced from accumulated content.
	SerializationFailure
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrResourceUnavailable  = errors.New("resource unavailable")
	ErrSerializationFailure = errors.New("serialization failure")
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case ResourceUnavailable:
		return "ResourceUnavailable"
	case SerializationFailure:
		return "SerializationFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidArgument:
		return ErrInvalidArgument
	case ResourceUnavailable:
		return ErrResourceUnavailable
	case SerializationFailure:
		return ErrSerializationFailure
	default:
		return nil
	}
}

// Error is returned by every builder operation. It matches one of the
// sentinel errors with errors.Is and exposes underlying cause.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind.sentinel(), e.Err}
}

// KindOf returns classification of the error or zero if err did not come from
// the builder.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Succeeded is boolean view of operation result for callers not interested
// in failure details.
func Succeeded(err error) bool {
	return err == nil
}

func newError(kind ErrorKind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func invalidArgument(op string, format string, args ...any) error {
	return newError(InvalidArgument, op, format, args...)
}

func resourceUnavailable(op string, format string, args ...any) error {
	return newError(ResourceUnavailable, op, format, args...)
}

func serializationFailure(op string, format string, args ...any) error {
	return newError(SerializationFailure, op, format, args...)
}
