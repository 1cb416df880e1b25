// Package errors provides custom error types for the tryouts system.
// These errors enable programmatic error checking with errors.Is and
// errors.As, and map one-to-one onto the failure classes of a compile run:
// unrecognised files, tabular grammar violations, version problems,
// unit-level data quality issues and naming collisions.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers need a single errors import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the tryouts system
var (
	// ErrFormat indicates a file is neither canonical nor tabular data
	ErrFormat = errors.New("unrecognized file format")

	// ErrStructural indicates a tabular grammar violation
	ErrStructural = errors.New("structural error")

	// ErrVersion indicates a missing, invalid or stale data-format version
	ErrVersion = errors.New("version error")

	// ErrDataQuality indicates a unit-level data problem that was recovered
	ErrDataQuality = errors.New("data quality error")

	// ErrCollision indicates a duplicate sheet or a station naming collision
	ErrCollision = errors.New("collision")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")
)

// StructuralCode names the specific tabular grammar violation.
type StructuralCode string

// Structural error codes.
const (
	UnsupportedCharacterData    StructuralCode = "UnsupportedCharacterData"
	SheetNotDefinedBeforeHeader StructuralCode = "SheetNotDefinedBeforeHeader"
	CategoryMismatch            StructuralCode = "CategoryMismatch"
	MissingCategories           StructuralCode = "MissingCategories"
	PropertyAfterHeader         StructuralCode = "PropertyAfterHeader"
	NoOpenSheet                 StructuralCode = "NoOpenSheet"
)

// VersionCode names the specific version problem.
type VersionCode string

// Version error codes.
const (
	MissingVersion VersionCode = "MissingVersion"
	InvalidVersion VersionCode = "InvalidVersion"
	StaleVersion   VersionCode = "StaleVersion"
)

// FormatError is returned when a file cannot be read as any supported format.
type FormatError struct {
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("file %s: %s: %v", e.File, e.Message, e.Err)
	}
	return fmt.Sprintf("file %s: %s", e.File, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// NewFormatError creates a new FormatError
func NewFormatError(file, message string, err error) *FormatError {
	return &FormatError{File: file, Message: message, Err: err}
}

// StructuralError is a tabular grammar violation that rejects the whole file.
type StructuralError struct {
	Code    StructuralCode
	File    string
	Row     int // 1-based, 0 when unknown
	Message string
}

// Error implements the error interface
func (e *StructuralError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s at %s row %d: %s", e.Code, e.File, e.Row, e.Message)
	}
	return fmt.Sprintf("%s in %s: %s", e.Code, e.File, e.Message)
}

// Is implements errors.Is support
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}

// NewStructuralError creates a new StructuralError
func NewStructuralError(code StructuralCode, file string, row int, message string) *StructuralError {
	return &StructuralError{Code: code, File: file, Row: row, Message: message}
}

// VersionError reports a record rejected by the version gate.
type VersionError struct {
	Code    VersionCode
	File    string
	Version string
}

// Error implements the error interface
func (e *VersionError) Error() string {
	switch e.Code {
	case MissingVersion:
		return fmt.Sprintf("file %s: db version is missing", e.File)
	case InvalidVersion:
		return fmt.Sprintf("file %s: db version %q is invalid", e.File, e.Version)
	default:
		return fmt.Sprintf("file %s: version %s is from an old db version", e.File, e.Version)
	}
}

// Is implements errors.Is support
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}

// NewVersionError creates a new VersionError
func NewVersionError(code VersionCode, file, version string) *VersionError {
	return &VersionError{Code: code, File: file, Version: version}
}

// DataQualityError describes a recovered problem with a single value.
type DataQualityError struct {
	Field   string // "id", "rating", "ratings"
	Value   string
	Message string
}

// Error implements the error interface
func (e *DataQualityError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is implements errors.Is support
func (e *DataQualityError) Is(target error) bool {
	return target == ErrDataQuality || target == ErrInvalidInput
}

// NewDataQualityError creates a new DataQualityError
func NewDataQualityError(field, value, message string) *DataQualityError {
	return &DataQualityError{Field: field, Value: value, Message: message}
}

// CollisionError describes a duplicate sheet or a station name collision.
type CollisionError struct {
	Resource string // "sheet" or "station"
	Name     string
	Message  string
}

// Error implements the error interface
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, e.Name, e.Message)
}

// Is implements errors.Is support
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// NewCollisionError creates a new CollisionError
func NewCollisionError(resource, name, message string) *CollisionError {
	return &CollisionError{Resource: resource, Name: name, Message: message}
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

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "csv", "xlsx"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
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
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "glob"
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

// Helper functions for error checking

// IsFormat checks if an error is an unrecognized-format error
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsStructural checks if an error is a tabular grammar error
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsVersion checks if an error came from the version gate
func IsVersion(err error) bool {
	return errors.Is(err, ErrVersion)
}

// IsDataQuality checks if an error is a recovered data quality problem
func IsDataQuality(err error) bool {
	return errors.Is(err, ErrDataQuality)
}

// IsCollision checks if an error is a duplicate or naming collision
func IsCollision(err error) bool {
	return errors.Is(err, ErrCollision)
}

// StructuralCodeOf returns the code of a StructuralError in err's chain.
func StructuralCodeOf(err error) (StructuralCode, bool) {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return "", false
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapConfig wraps an error as a ConfigError
func WrapConfig(component string, err error) error {
	if err == nil {
		return nil
	}
	return NewConfigError(component, err.Error(), err)
}
