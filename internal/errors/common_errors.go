package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDiscovery ErrorType = "DISCOVERY"
	ErrTypeParsing   ErrorType = "PARSING"
	ErrTypeStorage   ErrorType = "STORAGE"
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeTelemetry ErrorType = "TELEMETRY"
)

// Pipeline stages used in PipelineError
const (
	StageEnumerate = "enumerate"
	StageRead      = "read"
	StageExport    = "export"
)

// ErrNoInputFiles is returned when the input directory holds no CSV files.
// It is informational: callers report it and exit normally.
var ErrNoInputFiles = stderrors.New("no input files")

// PipelineError is an error raised by one stage of a run, optionally tied
// to the file being handled.
type PipelineError struct {
	Type    ErrorType
	Stage   string
	Path    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Stage)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is and errors.As to reach the cause
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WithContext adds context to the error
func (e *PipelineError) WithContext(key string, value interface{}) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewPipelineError creates a new pipeline error
func NewPipelineError(errType ErrorType, stage, path, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Stage:   stage,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// NewDiscoveryError creates an error for a failed input listing
func NewDiscoveryError(dir string, cause error) *PipelineError {
	return NewPipelineError(ErrTypeDiscovery, StageEnumerate, dir, "cannot list input directory", cause)
}

// NewParsingError creates an error for a file that cannot be read as CSV
func NewParsingError(path, message string, cause error) *PipelineError {
	return NewPipelineError(ErrTypeParsing, StageRead, path, message, cause)
}

// NewStorageError creates an error for a failed output write
func NewStorageError(path, message string, cause error) *PipelineError {
	return NewPipelineError(ErrTypeStorage, StageExport, path, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *PipelineError {
	return NewPipelineError(ErrTypeConfig, "config", "", message, cause)
}

// NewTelemetryError creates an error for telemetry setup or flushing
func NewTelemetryError(message string, cause error) *PipelineError {
	return NewPipelineError(ErrTypeTelemetry, "telemetry", "", message, cause)
}

// GetErrorType returns the type of the first PipelineError in err's chain
func GetErrorType(err error) ErrorType {
	var pErr *PipelineError
	if stderrors.As(err, &pErr) {
		return pErr.Type
	}
	return ""
}

// IsNoInputFiles reports whether err signals an empty input directory
func IsNoInputFiles(err error) bool {
	return stderrors.Is(err, ErrNoInputFiles)
}
