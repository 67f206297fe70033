package protocol

import (
	"errors"
	"fmt"
)

// CodeNominal is reported for a nil error.
const CodeNominal = "NOMINAL"

const (
	// Holder/storage state.
	ErrStorageFull       = "E_STORAGE_FULL"
	ErrResourceExhausted = "E_RESOURCE_EXHAUSTED"

	// Geometry/movement.
	ErrOutOfBounds = "E_OUT_OF_BOUNDS"
	ErrUnreachable = "E_UNREACHABLE"

	// Input validation.
	ErrInvalidRange = "E_INVALID_RANGE"
	ErrNotFound     = "E_NOT_FOUND"
	ErrBadRequest   = "E_BAD_REQUEST"
)

var knownCodes = map[string]struct{}{
	CodeNominal:          {},
	ErrStorageFull:       {},
	ErrResourceExhausted: {},
	ErrOutOfBounds:       {},
	ErrUnreachable:       {},
	ErrInvalidRange:      {},
	ErrNotFound:          {},
	ErrBadRequest:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Error is the single failure type of the simulation core. Every failure is
// recoverable; the caller decides what to do with it.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func Errorf(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Code returns a bare sentinel usable with errors.Is.
func Code(code string) error { return &Error{Code: code} }

// CodeOf maps err onto the code taxonomy. Errors from outside the core
// report E_BAD_REQUEST.
func CodeOf(err error) string {
	if err == nil {
		return CodeNominal
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrBadRequest
}
