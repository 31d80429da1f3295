// Package errors provides centralized error definitions and error handling utilities
// for stepwise. It defines the sentinel errors of the scheduling domain, structured
// error types with context builders, and a severity classifier.
//
// # Error Types
//
//   - ParseError: a precedence record that does not match the expected line shape
//   - ScheduleError: a scheduler run that cannot make progress or was aborted
//   - ValidationError: invalid configuration or flag values
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewScheduleError("no step can start", errors.ErrCyclicDependency).
//	    WithScheduler("team").WithTick(12)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrCyclicDependency) { ... }
//
//	var schedErr *errors.ScheduleError
//	if errors.As(err, &schedErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityWarning is for errors caused by bad input that the user can fix.
	SeverityWarning Severity = iota
	// SeverityError is for errors that abort a run.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrMalformedRecord indicates a precedence line that could not be parsed.
	ErrMalformedRecord = New("malformed precedence record")
	// ErrCyclicDependency indicates that the precedence relation contains a cycle
	// or a step that can never become ready.
	ErrCyclicDependency = New("cyclic or unreachable dependency")
	// ErrUnsupportedStep indicates a step identifier outside the supported alphabet.
	ErrUnsupportedStep = New("unsupported step identifier")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrCanceled indicates that a run was canceled before it finished.
	ErrCanceled = New("operation canceled")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// -----------------------------------------------------------------------------
// ParseError
// -----------------------------------------------------------------------------

// ParseError reports a precedence record that does not have the shape
// "Step X must be finished before step Y can begin.".
//
// Example:
//
//	err := errors.NewParseError("Step a must ...").WithLine(3)
//	fmt.Println(err) // "parse error [line=3]: malformed precedence record: \"Step a must ...\""
type ParseError struct {
	baseError
	Line int
	Text string
}

// NewParseError creates a ParseError for the given input text.
// The error always matches ErrMalformedRecord.
func NewParseError(text string) *ParseError {
	return &ParseError{
		baseError: baseError{
			message:  ErrMalformedRecord.Error(),
			severity: SeverityWarning,
		},
		Text: text,
	}
}

// WithLine records the 1-based line number of the record.
func (e *ParseError) WithLine(line int) *ParseError {
	e.Line = line
	return e
}

// WithCause adds a cause to the error.
func (e *ParseError) WithCause(cause error) *ParseError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ParseError) Error() string {
	prefix := "parse error"
	if e.Line > 0 {
		prefix = fmt.Sprintf("parse error [line=%d]", e.Line)
	}
	msg := fmt.Sprintf("%s: %s: %q", prefix, e.message, e.Text)
	if e.cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *ParseError) Is(target error) bool {
	if _, ok := target.(*ParseError); ok {
		return true
	}
	if target == ErrMalformedRecord {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ScheduleError
// -----------------------------------------------------------------------------

// ScheduleError represents a scheduler run that could not complete.
//
// Example:
//
//	err := errors.NewScheduleError("no step can start", errors.ErrCyclicDependency)
//	err = err.WithScheduler("team").WithTick(4).WithStranded("B", "C")
type ScheduleError struct {
	baseError
	Scheduler string
	Tick      int
	Step      string
	Stranded  []string
	Cycle     []string
}

// NewScheduleError creates a new ScheduleError.
func NewScheduleError(message string, cause error) *ScheduleError {
	return &ScheduleError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
		Tick: -1, // -1 indicates not set
	}
}

// WithScheduler names the scheduler that failed ("sequence" or "team").
func (e *ScheduleError) WithScheduler(name string) *ScheduleError {
	e.Scheduler = name
	return e
}

// WithTick records the simulated clock value at the time of failure.
func (e *ScheduleError) WithTick(tick int) *ScheduleError {
	e.Tick = tick
	return e
}

// WithStep records the step being processed when the failure happened.
func (e *ScheduleError) WithStep(step string) *ScheduleError {
	e.Step = step
	return e
}

// WithStranded records the steps that were never finished.
func (e *ScheduleError) WithStranded(steps ...string) *ScheduleError {
	e.Stranded = steps
	return e
}

// WithCycle records a concrete dependency cycle, first step repeated last.
func (e *ScheduleError) WithCycle(steps ...string) *ScheduleError {
	e.Cycle = steps
	return e
}

// Error returns the formatted error message.
func (e *ScheduleError) Error() string {
	var parts []string
	if e.Scheduler != "" {
		parts = append(parts, fmt.Sprintf("scheduler=%s", e.Scheduler))
	}
	if e.Tick >= 0 {
		parts = append(parts, fmt.Sprintf("tick=%d", e.Tick))
	}
	if e.Step != "" {
		parts = append(parts, fmt.Sprintf("step=%s", e.Step))
	}

	prefix := "schedule error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("schedule error [%s]", strings.Join(parts, ", "))
	}

	msg := fmt.Sprintf("%s: %s", prefix, e.message)
	if len(e.Cycle) > 0 {
		msg = fmt.Sprintf("%s (cycle %s)", msg, strings.Join(e.Cycle, " -> "))
	} else if len(e.Stranded) > 0 {
		msg = fmt.Sprintf("%s (stranded %s)", msg, strings.Join(e.Stranded, ","))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *ScheduleError) Is(target error) bool {
	if _, ok := target.(*ScheduleError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// ValidationError
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("must be at least 1").
//	    WithField("schedule.workers").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't carry one.
func GetSeverity(err error) Severity {
	var sev interface{ Severity() Severity }
	if err != nil && As(err, &sev) {
		return sev.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to read input")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
//
// Example:
//
//	err := errors.Wrapf(baseErr, "failed to solve %s", path)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
