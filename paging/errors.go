package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulation errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Input errors
	ErrCodeInvalidCapacity
	ErrCodeInvalidPage
	ErrCodeUnknownAlgorithm
	ErrCodeInvalidWorkload

	// Trace archive errors
	ErrCodeTraceCorrupted
	ErrCodeUnsupportedCompression
)

// SimulationError represents a simulator error with context
type SimulationError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimulationError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimulationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a SimulationError with the same code
func (e *SimulationError) Is(target error) bool {
	if t, ok := target.(*SimulationError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimulationError creates a new simulation error
func NewSimulationError(code ErrorCode, op, message string, err error) *SimulationError {
	return &SimulationError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is checks; only the code is compared.
var (
	ErrCapacity  = &SimulationError{Code: ErrCodeInvalidCapacity}
	ErrPage      = &SimulationError{Code: ErrCodeInvalidPage}
	ErrAlgorithm = &SimulationError{Code: ErrCodeUnknownAlgorithm}
	ErrWorkload  = &SimulationError{Code: ErrCodeInvalidWorkload}
	ErrTrace     = &SimulationError{Code: ErrCodeTraceCorrupted}
)

// Helper functions for common errors

func ErrInvalidCapacity(op string, capacity int) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidCapacity,
		op,
		fmt.Sprintf("capacity must be at least 1, got %d", capacity),
		nil,
	)
}

func ErrInvalidPage(op string, index int, page Page, maxPage int) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidPage,
		op,
		fmt.Sprintf("page %d at position %d is outside [0, %d]", page, index, maxPage),
		nil,
	)
}

func ErrUnknownAlgorithm(op string, name string) *SimulationError {
	return NewSimulationError(
		ErrCodeUnknownAlgorithm,
		op,
		fmt.Sprintf("unknown algorithm %q", name),
		nil,
	)
}

func ErrInvalidWorkload(op string, reason string) *SimulationError {
	return NewSimulationError(
		ErrCodeInvalidWorkload,
		op,
		reason,
		nil,
	)
}

func ErrTraceCorrupted(op string, reason string, err error) *SimulationError {
	return NewSimulationError(
		ErrCodeTraceCorrupted,
		op,
		reason,
		err,
	)
}

func ErrUnsupportedCompression(op string, name string) *SimulationError {
	return NewSimulationError(
		ErrCodeUnsupportedCompression,
		op,
		fmt.Sprintf("unsupported compression %q", name),
		nil,
	)
}

// IsErrorCode checks if an error (or anything it wraps) has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimulationError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimulationError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}

// CheckPages rejects pages outside [0, maxPage]. A negative maxPage only
// rejects negative pages.
func CheckPages(pages []Page, maxPage int) error {
	for i, p := range pages {
		if p < 0 || (maxPage >= 0 && int(p) > maxPage) {
			return ErrInvalidPage("CheckPages", i, p, maxPage)
		}
	}
	return nil
}
