// Package errors provides standardized error types and helpers for the ttx codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrParse indicates malformed XML or missing required TTX structure
	ErrParse = errors.New("parse error")
	// ErrEncoding indicates bytes that cannot be decoded or encoded per the declared encoding
	ErrEncoding = errors.New("encoding error")
	// ErrNoTargetPath indicates a write with no explicit path and none remembered from load
	ErrNoTargetPath = errors.New("no target path")
	// ErrInvalidAttribute indicates a numeric attribute holding non-numeric data
	ErrInvalidAttribute = errors.New("invalid attribute")
)

// ParseError represents malformed XML or a document missing required
// structural elements (FrontMatter, ToolSettings, UserSettings, Body, Raw).
type ParseError struct {
	Path    string // File path, if applicable
	Element string // Structural element involved, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Element != "":
		return fmt.Sprintf("failed to parse TTX at %s: %s: %s", e.Path, e.Element, e.Message)
	case e.Path != "":
		return fmt.Sprintf("failed to parse TTX at %s: %s", e.Path, e.Message)
	case e.Element != "":
		return fmt.Sprintf("failed to parse TTX: %s: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("failed to parse TTX: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// EncodingError represents file bytes that cannot be decoded or encoded
// per the on-disk encoding.
type EncodingError struct {
	Operation string // "decode" or "encode"
	Encoding  string // Encoding name (e.g., "UTF-16LE")
	Path      string // File path, if applicable
	Err       error  // Underlying error
}

func (e *EncodingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s at %s: %v", e.Operation, e.Encoding, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrEncoding
}

// NoTargetPathError represents a write with no path argument on a document
// that was never loaded from disk.
type NoTargetPathError struct {
	Operation string // Operation that needed a path (e.g., "write")
}

func (e *NoTargetPathError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("cannot %s: no target path given and none remembered", e.Operation)
	}
	return "no target path given and none remembered"
}

func (e *NoTargetPathError) Unwrap() error {
	return ErrNoTargetPath
}

// InvalidAttributeError represents a numeric attribute holding non-numeric
// data (e.g., a MatchPercent of "high").
type InvalidAttributeError struct {
	Attribute string // Attribute name
	Value     string // Offending value
	Err       error  // Underlying error, if any
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid %s attribute: %q is not numeric", e.Attribute, e.Value)
}

func (e *InvalidAttributeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidAttribute
}

// Helper functions for creating common errors

// NewParse creates a ParseError
func NewParse(path, element, message string) *ParseError {
	return &ParseError{
		Path:    path,
		Element: element,
		Message: message,
	}
}

// NewEncoding creates an EncodingError
func NewEncoding(operation, encoding, path string, err error) *EncodingError {
	return &EncodingError{
		Operation: operation,
		Encoding:  encoding,
		Path:      path,
		Err:       err,
	}
}

// NewNoTargetPath creates a NoTargetPathError
func NewNoTargetPath(operation string) *NoTargetPathError {
	return &NoTargetPathError{Operation: operation}
}

// NewInvalidAttribute creates an InvalidAttributeError
func NewInvalidAttribute(attribute, value string, err error) *InvalidAttributeError {
	return &InvalidAttributeError{
		Attribute: attribute,
		Value:     value,
		Err:       err,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
