// Package errors provides centralized error definitions and error handling
// utilities for the taredo codebase. It defines domain-specific errors,
// semantic error types, error constructors with context wrapping, and error
// classification helpers.
//
// # Error Types
//
// The package provides two categories of errors:
//
// Domain-specific errors represent errors from specific subsystems:
//   - TaskError: errors related to a single task (state changes, dependencies)
//   - GroupError: errors related to group membership workflows
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - AlreadyExistsError: resource already exists
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	// Domain-specific error
//	err := errors.NewTaskError("cannot complete task", errors.ErrOpenDependency).WithTaskID(4)
//
//	// Semantic error
//	err := errors.NewNotFoundError("task", "17")
//
// Checking errors:
//
//	// Check for specific sentinel errors
//	if errors.Is(err, errors.ErrHasDependents) { ... }
//
//	// Check for error types
//	var taskErr *errors.TaskError
//	if errors.As(err, &taskErr) { ... }
//
// All errors defined here are recoverable: a front end reports the message
// and re-prompts. None of them terminates the session.
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
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
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

// Lookup sentinel errors
var (
	// ErrTaskNotFound indicates that no task has the requested ID.
	ErrTaskNotFound = New("task not found")
	// ErrUserNotFound indicates that no user has the requested name.
	ErrUserNotFound = New("user not found")
	// ErrGroupNotFound indicates that no group has the requested name.
	ErrGroupNotFound = New("group not found")
)

// Task mutation sentinel errors
var (
	// ErrDuplicateTask indicates that an equivalent task already exists
	// among the acting user's visible tasks.
	ErrDuplicateTask = New("task already exists")
	// ErrUnauthorized indicates that the acting user does not own the task
	// directly or through one of their groups.
	ErrUnauthorized = New("operation not permitted on this task")
	// ErrHasDependents indicates a deletion blocked by tasks that still
	// depend on the target.
	ErrHasDependents = New("other tasks depend on this task")
	// ErrOpenDependency indicates a completion blocked by an unfinished
	// dependency.
	ErrOpenDependency = New("a prerequisite task is not finished")
	// ErrCompletedDependent indicates a reopening blocked by an already
	// finished dependent.
	ErrCompletedDependent = New("a dependent task is already finished")
	// ErrInvalidTransition indicates an attempt to give a finished task a
	// pending dependency.
	ErrInvalidTransition = New("a finished task cannot have pending prerequisites")
	// ErrNoSuchDependency indicates removal of a dependency the task does
	// not have.
	ErrNoSuchDependency = New("task does not depend on that ID")
	// ErrPastDueDate indicates a pending deadline task created with a due
	// date that is not in the future.
	ErrPastDueDate = New("due date must be in the future")
)

// Group workflow sentinel errors
var (
	// ErrGroupExists indicates an attempt to create a group whose name is taken.
	ErrGroupExists = New("group already exists")
	// ErrNotMember indicates an operation that requires group membership.
	ErrNotMember = New("user is not a member of the group")
	// ErrAlreadyMember indicates a request or invite for a confirmed member.
	ErrAlreadyMember = New("user is already a member of the group")
	// ErrPendingEntry indicates a request or invite for a user that already
	// has an unresolved pending entry in the group.
	ErrPendingEntry = New("user already has a pending entry in the group")
)

// General sentinel errors
var (
	// ErrChoiceOutOfRange indicates a menu-style selection index outside
	// the presented bounds.
	ErrChoiceOutOfRange = New("choice out of range")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
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
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// TaskError represents errors related to a single task.
//
// Example:
//
//	err := errors.NewTaskError("cannot complete task", errors.ErrOpenDependency)
//	err = err.WithTaskID(4).WithDependencyID(2)
//	fmt.Println(err) // "task error [task=4, dependency=2]: cannot complete task: ..."
type TaskError struct {
	baseError
	TaskID       int
	DependencyID int
}

// NewTaskError creates a new TaskError.
func NewTaskError(message string, cause error) *TaskError {
	return &TaskError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityWarning,
		},
		TaskID:       -1, // -1 indicates not set
		DependencyID: -1,
	}
}

// WithTaskID adds a task ID to the error context.
func (e *TaskError) WithTaskID(id int) *TaskError {
	e.TaskID = id
	return e
}

// WithDependencyID adds the offending dependency ID to the error context.
func (e *TaskError) WithDependencyID(id int) *TaskError {
	e.DependencyID = id
	return e
}

// WithSeverity sets the error severity.
func (e *TaskError) WithSeverity(s Severity) *TaskError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *TaskError) Error() string {
	var parts []string
	if e.TaskID >= 0 {
		parts = append(parts, fmt.Sprintf("task=%d", e.TaskID))
	}
	if e.DependencyID >= 0 {
		parts = append(parts, fmt.Sprintf("dependency=%d", e.DependencyID))
	}

	prefix := "task error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("task error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *TaskError) Is(target error) bool {
	if _, ok := target.(*TaskError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// GroupError represents errors related to group membership workflows.
//
// Example:
//
//	err := errors.NewGroupError("cannot invite user", errors.ErrPendingEntry)
//	err = err.WithGroup("backend").WithUser("alice")
type GroupError struct {
	baseError
	Group string
	User  string
}

// NewGroupError creates a new GroupError.
func NewGroupError(message string, cause error) *GroupError {
	return &GroupError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityWarning,
		},
	}
}

// WithGroup adds a group name to the error context.
func (e *GroupError) WithGroup(name string) *GroupError {
	e.Group = name
	return e
}

// WithUser adds a user name to the error context.
func (e *GroupError) WithUser(name string) *GroupError {
	e.User = name
	return e
}

// Error returns the formatted error message.
func (e *GroupError) Error() string {
	var parts []string
	if e.Group != "" {
		parts = append(parts, fmt.Sprintf("group=%s", e.Group))
	}
	if e.User != "" {
		parts = append(parts, fmt.Sprintf("user=%s", e.User))
	}

	prefix := "group error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("group error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *GroupError) Is(target error) bool {
	if _, ok := target.(*GroupError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("task", "17")
//	fmt.Println(err) // "task '17' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:  fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity: SeverityWarning,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// AlreadyExistsError represents a resource that already exists.
//
// Example:
//
//	err := errors.NewAlreadyExistsError("group", "backend")
//	fmt.Println(err) // "group 'backend' already exists"
type AlreadyExistsError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewAlreadyExistsError creates a new AlreadyExistsError.
func NewAlreadyExistsError(resourceType, resourceID string) *AlreadyExistsError {
	return &AlreadyExistsError{
		baseError: baseError{
			message:  fmt.Sprintf("%s '%s' already exists", resourceType, resourceID),
			severity: SeverityWarning,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *AlreadyExistsError) WithCause(cause error) *AlreadyExistsError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *AlreadyExistsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' already exists: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' already exists", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *AlreadyExistsError) Is(target error) bool {
	if _, ok := target.(*AlreadyExistsError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("user name cannot end in a reserved tag")
//	err = err.WithField("name").WithValue("alice<T>")
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
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// severityCarrier is implemented by all errors defined in this package.
type severityCarrier interface {
	error
	Severity() Severity
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't carry a severity.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var carrier severityCarrier
	if As(err, &carrier) {
		return carrier.Severity()
	}

	return SeverityError
}

// IsUserFacing returns true if the error message is safe to display to end
// users. Every error in the recoverable taxonomy is user-facing; anything
// else is treated as internal.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var carrier severityCarrier
	if As(err, &carrier) {
		return true
	}

	for _, sentinel := range []error{
		ErrTaskNotFound, ErrUserNotFound, ErrGroupNotFound,
		ErrDuplicateTask, ErrUnauthorized, ErrHasDependents,
		ErrOpenDependency, ErrCompletedDependent, ErrInvalidTransition,
		ErrNoSuchDependency, ErrPastDueDate, ErrGroupExists,
		ErrNotMember, ErrAlreadyMember, ErrPendingEntry,
		ErrChoiceOutOfRange, ErrInvalidInput,
	} {
		if Is(err, sentinel) {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to import task")
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
//	err := errors.Wrapf(baseErr, "failed to import task %d", id)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
