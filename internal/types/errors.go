package types

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	KindUnknownOperation  ErrorKind = "UnknownOperation"
	KindInvalidArguments  ErrorKind = "InvalidArguments"
	KindSecurityViolation ErrorKind = "SecurityViolation"
	KindNotFound          ErrorKind = "NotFound"
	KindAlreadyExists     ErrorKind = "AlreadyExists"
	KindPermissionDenied  ErrorKind = "PermissionDenied"
	KindIOFailure         ErrorKind = "IOFailure"
)

// OpError is the error type handlers and the dispatcher exchange.
// Kind drives the failure descriptor of the Result; Err optionally wraps
// the underlying cause for errors.Is/errors.As.
type OpError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *OpError) Unwrap() error { return e.Err }

// NewOpError creates an OpError with a formatted message.
func NewOpError(kind ErrorKind, format string, args ...interface{}) *OpError {
	return &OpError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing file or directory.
func NotFound(format string, args ...interface{}) *OpError {
	return NewOpError(KindNotFound, format, args...)
}

// AlreadyExists reports a collision with an existing file or directory.
func AlreadyExists(format string, args ...interface{}) *OpError {
	return NewOpError(KindAlreadyExists, format, args...)
}

// InvalidArguments reports a malformed or unacceptable argument.
func InvalidArguments(format string, args ...interface{}) *OpError {
	return NewOpError(KindInvalidArguments, format, args...)
}

// SecurityViolation reports a path escape attempt. The message must carry
// the caller-supplied token only, never a resolved absolute path.
func SecurityViolation(token string) *OpError {
	return NewOpError(KindSecurityViolation, "access denied: path %q is outside the sandbox", token)
}

// Classify converts an arbitrary error into an OpError. Existing OpError
// values pass through unchanged; well-known filesystem conditions map to
// their kinds; anything else becomes IOFailure.
func Classify(err error) *OpError {
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr
	}

	var pathErr *fs.PathError
	msg := err.Error()
	if errors.As(err, &pathErr) {
		// Strip the syscall decoration, keep the operation context.
		msg = fmt.Sprintf("%s failed: %v", pathErr.Op, pathErr.Err)
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return &OpError{Kind: KindNotFound, Message: msg, Err: err}
	case errors.Is(err, os.ErrExist):
		return &OpError{Kind: KindAlreadyExists, Message: msg, Err: err}
	case errors.Is(err, os.ErrPermission):
		return &OpError{Kind: KindPermissionDenied, Message: msg, Err: err}
	default:
		return &OpError{Kind: KindIOFailure, Message: msg, Err: err}
	}
}
