// Package errors provides centralized error definitions and error handling
// utilities for the grid. It defines sentinel errors, semantic error types,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent problems in one subsystem:
//   - ConfigurationError: a column refers to a renderer or editor that cannot
//     be used (unknown name, missing GUI, unavailable template)
//   - CellError: a runtime failure attributed to a single cell
//
// Semantic errors represent common conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigurationError("unknown cell renderer", errors.ErrRendererNotFound).
//	    WithColumn("price").
//	    WithName("sparkline")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRendererNotFound) { ... }
//	if errors.IsConfiguration(err) { ... }
//
// # Error Classification
//
// Configuration errors are warnings: the grid logs them and carries on with
// the next rendering strategy. They are never returned across the cell
// controller boundary.
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
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
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
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Rendering and editing sentinel errors
var (
	// ErrRendererNotFound indicates that a named cell renderer is not registered.
	ErrRendererNotFound = New("cell renderer not found")
	// ErrEditorNotFound indicates that a named cell editor is not registered.
	ErrEditorNotFound = New("cell editor not found")
	// ErrEditorMissingGUI indicates that an editor produced no GUI element.
	ErrEditorMissingGUI = New("cell editor is missing a GUI")
	// ErrTemplateUnavailable indicates that a URL template could not be loaded.
	ErrTemplateUnavailable = New("template unavailable")
	// ErrExpressionFailed indicates that a class-rule expression did not evaluate.
	ErrExpressionFailed = New("expression evaluation failed")
)

// Data sentinel errors
var (
	// ErrInvalidRowData indicates row data of a shape the value service cannot read.
	ErrInvalidRowData = New("invalid row data")
	// ErrUnknownColumn indicates a column id that is not part of the grid.
	ErrUnknownColumn = New("unknown column")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// GridError is the base interface for the grid's error types. It extends the
// standard error interface with classification methods.
type GridError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
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

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "prefix [k=v, ...]: message: cause".
func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ConfigurationError reports a column definition that refers to something
// the grid cannot use.
//
// Example:
//
//	err := errors.NewConfigurationError("unknown cell editor", errors.ErrEditorNotFound).
//	    WithColumn("qty").WithName("spinner")
//	fmt.Println(err) // "configuration error [column=qty, name=spinner]: unknown cell editor: cell editor not found"
type ConfigurationError struct {
	baseError
	Column string
	Name   string
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithColumn adds the offending column id to the error context.
func (e *ConfigurationError) WithColumn(colID string) *ConfigurationError {
	e.Column = colID
	return e
}

// WithName adds the unresolved renderer, editor or template name.
func (e *ConfigurationError) WithName(name string) *ConfigurationError {
	e.Name = name
	return e
}

// Error returns the formatted error message.
func (e *ConfigurationError) Error() string {
	var parts []string
	if e.Column != "" {
		parts = append(parts, "column="+e.Column)
	}
	if e.Name != "" {
		parts = append(parts, "name="+e.Name)
	}
	return e.format("configuration error", parts)
}

// Is reports whether target is a ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	_, ok := target.(*ConfigurationError)
	return ok
}

// CellError reports a runtime failure attributed to one cell, such as a
// value that could not be written back to its row.
type CellError struct {
	baseError
	RowID  string
	Column string
}

// NewCellError creates a new CellError.
func NewCellError(message string, cause error) *CellError {
	return &CellError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithRow adds the row id to the error context.
func (e *CellError) WithRow(rowID string) *CellError {
	e.RowID = rowID
	return e
}

// WithColumn adds the column id to the error context.
func (e *CellError) WithColumn(colID string) *CellError {
	e.Column = colID
	return e
}

// WithSeverity sets the error severity.
func (e *CellError) WithSeverity(s Severity) *CellError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *CellError) Error() string {
	var parts []string
	if e.RowID != "" {
		parts = append(parts, "row="+e.RowID)
	}
	if e.Column != "" {
		parts = append(parts, "column="+e.Column)
	}
	return e.format("cell error", parts)
}

// Is reports whether target is a CellError.
func (e *CellError) Is(target error) bool {
	_, ok := target.(*CellError)
	return ok
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("template", "cells/price.html")
//	fmt.Println(err) // "template 'cells/price.html' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
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

// Is reports whether target is a NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("column id cannot be empty").WithField("columns[2].field")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
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
		parts = append(parts, "field="+e.Field)
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is reports whether target is a ValidationError or ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsConfiguration returns true if err is or wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return As(err, &cfgErr)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	var gridErr GridError
	if As(err, &gridErr) {
		return gridErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement GridError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var gridErr GridError
	if As(err, &gridErr) {
		return gridErr.Severity()
	}
	return SeverityError
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
