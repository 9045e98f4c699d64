package errors

import (
	"errors"
	"fmt"
)

// AppError is a structured application error with a stable code the CLI
// can branch on.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving an existing code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: err}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code, or "UNKNOWN" for foreign errors.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// Error codes for the pipeline's failure taxonomy. Only LoadError and
// EmptyResult abort a run; everything else is contained per column or cell.
const (
	CodeLoadError     = "LOAD_ERROR"
	CodeEmptyResult   = "EMPTY_RESULT"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeHistoryError  = "HISTORY_ERROR"
	CodeChartError    = "CHART_ERROR"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// LoadError marks an input file that is missing or unparseable. The
// message always names the path.
func LoadError(path string, cause error) *AppError {
	return &AppError{
		Code:    CodeLoadError,
		Message: fmt.Sprintf("cannot load input file %s", path),
		Cause:   cause,
	}
}

// EmptyResult marks a run that produced no relevant columns or no valid
// observations.
func EmptyResult(message string) *AppError {
	return New(CodeEmptyResult, message)
}

func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func HistoryError(cause error) *AppError {
	return &AppError{Code: CodeHistoryError, Message: "run history store failed", Cause: cause}
}

func ChartError(cause error) *AppError {
	return &AppError{Code: CodeChartError, Message: "chart rendering failed", Cause: cause}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
