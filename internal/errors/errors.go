// Package errors defines the structured error taxonomy of the probe.
// Every kind is terminal for an invocation and is reported to the
// monitoring supervisor with UNKNOWN severity.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a probe failure.
type Kind string

const (
	// KindUsage indicates malformed or missing command-line arguments.
	KindUsage Kind = "USAGE"
	// KindInput indicates a missing or unreadable snapshot file.
	KindInput Kind = "INPUT"
	// KindStale indicates the snapshot is older than the freshness window.
	KindStale Kind = "STALE_DATA"
	// KindIO indicates the snapshot could not be read after the access check passed.
	KindIO Kind = "IO"
	// KindConfig indicates an invalid or unparsable configuration.
	KindConfig Kind = "CONFIG"
)

// ProbeError carries a kind for programmatic handling, the human-readable
// message printed after "FAILED - ", the underlying cause and optional
// context for the log file.
type ProbeError struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a ProbeError of the same kind. This lets
// callers match on sentinel values such as ErrStale.
func (e *ProbeError) Is(target error) bool {
	t, ok := target.(*ProbeError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is matching by kind.
var (
	ErrUsage  = &ProbeError{Kind: KindUsage}
	ErrInput  = &ProbeError{Kind: KindInput}
	ErrStale  = &ProbeError{Kind: KindStale}
	ErrIO     = &ProbeError{Kind: KindIO}
	ErrConfig = &ProbeError{Kind: KindConfig}
)

// New creates a new ProbeError with the given kind and message.
func New(kind Kind, message string) *ProbeError {
	return &ProbeError{
		Kind:    kind,
		Message: message,
	}
}

// Newf creates a new ProbeError with a formatted message.
func Newf(kind Kind, format string, args ...any) *ProbeError {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a kind and message.
func Wrap(kind Kind, message string, cause error) *ProbeError {
	return &ProbeError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches a context entry and returns the same error.
func (e *ProbeError) WithContext(key string, value any) *ProbeError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// KindOf returns the kind of the first ProbeError in err's chain,
// or an empty Kind when there is none.
func KindOf(err error) Kind {
	var pe *ProbeError
	if stderrors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Summary returns the one-line description of err suitable for the
// "FAILED - " status line. Causes are appended only for IO failures,
// where the message alone does not say what went wrong.
func Summary(err error) string {
	var pe *ProbeError
	if !stderrors.As(err, &pe) {
		return err.Error()
	}
	if pe.Kind == KindIO && pe.Cause != nil {
		return fmt.Sprintf("%s: %v", pe.Message, pe.Cause)
	}
	return pe.Message
}
