package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrEmptyDomain     = errors.New("domain is empty")
	ErrInvalidDomain   = errors.New("invalid domain name")
	ErrDuplicateDomain = errors.New("domain already registered")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrBusy            = errors.New("another operation is in progress")
	ErrRemoteStatus    = errors.New("remote reported failure")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindValidation    ErrorKind = "validation"
	KindDuplicate     ErrorKind = "duplicate"
	KindFetch         ErrorKind = "fetch"
	KindRemote        ErrorKind = "remote"
	KindBusy          ErrorKind = "busy"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: file path or remote resource
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
// The outermost OpError wins, so callers can re-kind an adapter error.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError, or "" if there is none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// RemoteStatusError carries the status and message reported by the remote API
// when the transport succeeded but the application did not.
type RemoteStatusError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *RemoteStatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	if e.Status != "" {
		return fmt.Sprintf("remote status %s (http %d): %s", e.Status, e.HTTPStatus, msg)
	}
	return fmt.Sprintf("remote http %d: %s", e.HTTPStatus, msg)
}

func (e *RemoteStatusError) Is(target error) bool {
	return target == ErrRemoteStatus
}
