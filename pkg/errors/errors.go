// Package errors defines the coded error types surfaced by the benchmark
// harness.
package errors

import (
	"errors"
	"fmt"
)

type BenchError struct {
	Code     string
	Message  string
	Cause    error
	Scenario string
}

func (e *BenchError) Error() string {
	if e.Scenario != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Scenario, e.Message, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	if e.Scenario != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Scenario, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BenchError) Unwrap() error { return e.Cause }

const (
	ErrCodeOperationFailed   = "OPERATION_FAILED"
	ErrCodeDivisionByZero    = "DIVISION_BY_ZERO"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeInvalidConfig     = "INVALID_CONFIG"
)

// ErrOperationFailed wraps a protocol operation error raised during a timed
// trial. It aborts the whole run; no partial suite is emitted.
func ErrOperationFailed(scenario string, cause error) *BenchError {
	return &BenchError{
		Code:     ErrCodeOperationFailed,
		Message:  "protocol operation failed during measurement",
		Cause:    cause,
		Scenario: scenario,
	}
}

func ErrDivisionByZero(msg string) *BenchError {
	return &BenchError{
		Code:    ErrCodeDivisionByZero,
		Message: msg,
	}
}

func ErrUnsupportedFormat(format string) *BenchError {
	return &BenchError{
		Code:    ErrCodeUnsupportedFormat,
		Message: fmt.Sprintf("unsupported output format %q", format),
	}
}

func ErrInvalidConfig(msg string, cause error) *BenchError {
	return &BenchError{
		Code:    ErrCodeInvalidConfig,
		Message: msg,
		Cause:   cause,
	}
}

func HasCode(err error, code string) bool {
	var be *BenchError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
