package runloop

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid runtime configuration: a duplicate
// tool name, an iteration limit below one, a tool spec without a handler.
// It is raised at construction time, never during a run.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "runloop: configuration: " + e.Msg
}

// ValidationError reports malformed input: an invalid message construction,
// a missing or uncastable tool argument, empty user input. It is raised at
// the point of construction or resolution and fails fast.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("runloop: validation: %s: %s", e.Field, e.Msg)
	}
	return "runloop: validation: " + e.Msg
}

// ProtocolError reports a model turn that produced neither tool calls nor
// text. It is fatal and never retried.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return "runloop: protocol: " + e.Msg
}

// IterationLimitError reports that a run reached its iteration limit without
// terminating. It carries the configured limit and is always surfaced to the
// caller; the loop is never silently truncated.
type IterationLimitError struct {
	Limit int
}

func (e *IterationLimitError) Error() string {
	return fmt.Sprintf("runloop: agent exceeded max iterations (%d)", e.Limit)
}

// ProviderError reports a failure from the model provider. Transient marks
// errors worth retrying (rate limits, overload); the retry package keys on
// it via IsTransient.
type ProviderError struct {
	Code      string
	Msg       string
	Transient bool
	Cause     error
}

func (e *ProviderError) Error() string {
	msg := e.Msg
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("runloop: provider: %s: %s", e.Code, msg)
	}
	return "runloop: provider: " + msg
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError wraps a provider failure.
func NewProviderError(code, msg string, transient bool, cause error) *ProviderError {
	return &ProviderError{Code: code, Msg: msg, Transient: transient, Cause: cause}
}

// IsTransient reports whether err is a provider error worth retrying.
func IsTransient(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Transient
	}
	return false
}
