// Package errors provides custom error types for the openmwmm system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the openmwmm system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedRecord indicates a structurally broken record or subrecord
	ErrMalformedRecord = errors.New("malformed record")

	// ErrCorruptList indicates a leveled-list payload that cannot be decoded
	ErrCorruptList = errors.New("corrupt leveled list")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MalformedRecordError represents a structural failure while decoding the
// binary record stream: a truncated header, a payload shorter than its
// declared size, or a subrecord overrunning its parent record.
type MalformedRecordError struct {
	Path    string // file being decoded, if known
	Record  string // four-char record tag, if known
	Offset  int64  // byte offset of the failing record
	Message string
	Err     error
}

// Error implements the error interface
func (e *MalformedRecordError) Error() string {
	switch {
	case e.Path != "" && e.Record != "":
		return fmt.Sprintf("malformed %s record in %s at offset %d: %s", e.Record, e.Path, e.Offset, e.Message)
	case e.Path != "":
		return fmt.Sprintf("malformed record in %s at offset %d: %s", e.Path, e.Offset, e.Message)
	case e.Record != "":
		return fmt.Sprintf("malformed %s record at offset %d: %s", e.Record, e.Offset, e.Message)
	default:
		return fmt.Sprintf("malformed record at offset %d: %s", e.Offset, e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// CorruptListError represents a leveled-list record whose payload cannot be
// decoded: a declared entry count that does not match the available bytes,
// an out-of-range level, or a missing identifier.
type CorruptListError struct {
	Path    string // file being decoded, if known
	List    string // leveled-list identifier, if it could be read
	Message string
	Err     error
}

// Error implements the error interface
func (e *CorruptListError) Error() string {
	switch {
	case e.Path != "" && e.List != "":
		return fmt.Sprintf("corrupt leveled list %q in %s: %s", e.List, e.Path, e.Message)
	case e.List != "":
		return fmt.Sprintf("corrupt leveled list %q: %s", e.List, e.Message)
	case e.Path != "":
		return fmt.Sprintf("corrupt leveled list in %s: %s", e.Path, e.Message)
	default:
		return fmt.Sprintf("corrupt leveled list: %s", e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *CorruptListError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CorruptListError) Is(target error) bool {
	return target == ErrCorruptList
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// MergeError represents a failure while folding one plugin into the merged
// leveled-list state.
type MergeError struct {
	Plugin string
	List   string
	Err    error
}

// Error implements the error interface
func (e *MergeError) Error() string {
	if e.List != "" {
		return fmt.Sprintf("merging %s (list %q): %v", e.Plugin, e.List, e.Err)
	}
	return fmt.Sprintf("merging %s: %v", e.Plugin, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *MergeError) Unwrap() error {
	return e.Err
}

// NewMergeError creates a new MergeError
func NewMergeError(plugin, list string, err error) *MergeError {
	return &MergeError{
		Plugin: plugin,
		List:   list,
		Err:    err,
	}
}

// ParseError represents an error when parsing text formats
type ParseError struct {
	Format  string // "cfg", "yaml", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s file %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "install", "uninstall", "merge", "write"
	Resource  string // "mod", "plugin", "config", "document"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMalformedRecord checks if an error is a structural decode error
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}

// IsCorruptList checks if an error is a leveled-list decode error
func IsCorruptList(err error) bool {
	return errors.Is(err, ErrCorruptList)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
