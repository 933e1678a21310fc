// Package errors defines the error kinds reported by QR generation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a generation failure so the presentation layer can decide
// how to surface it.
type Kind string

const (
	KindMissingInput     Kind = "MISSING_INPUT"
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindInvalidDimension Kind = "INVALID_DIMENSION"
	KindUnreadableImage  Kind = "UNREADABLE_IMAGE"
	KindGeneration       Kind = "GENERATION_ERROR"
)

// Error is the single error type returned across package boundaries.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithDetails attaches a human readable detail string.
func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// WithCause attaches the original error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// KindOf returns the Kind of the first *Error in err's chain. Errors that are
// not ours count as generation errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindGeneration
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrMissingInput reports a required field left empty.
func ErrMissingInput(field string) *Error {
	return New(KindMissingInput, "Please enter a "+field).
		WithDetails(fmt.Sprintf("field %q is required", field))
}

// ErrInvalidInput reports a parameter outside its accepted range or format.
func ErrInvalidInput(field, reason string) *Error {
	return New(KindInvalidInput, "Invalid "+field).WithDetails(reason)
}

// ErrInvalidDimension reports a logo that cannot fit on the raster.
func ErrInvalidDimension(logoSize, width, height int) *Error {
	return New(KindInvalidDimension, "Logo does not fit on the QR code").
		WithDetails(fmt.Sprintf("logo size %d exceeds raster %dx%d", logoSize, width, height))
}

// ErrInvalidLogoSize reports a logo size that is zero or negative.
func ErrInvalidLogoSize(logoSize int) *Error {
	return New(KindInvalidDimension, "Logo size must be positive").
		WithDetails(fmt.Sprintf("got %d", logoSize))
}

// ErrUnreadableImage reports a logo source that could not be decoded.
func ErrUnreadableImage(name string, cause error) *Error {
	e := New(KindUnreadableImage, "Could not read logo image").WithCause(cause)
	if name != "" {
		e.Details = name
	}
	if cause != nil {
		if e.Details != "" {
			e.Details += ": "
		}
		e.Details += cause.Error()
	}
	return e
}

// ErrGeneration wraps any failure while encoding or compositing.
func ErrGeneration(stage string, cause error) *Error {
	e := New(KindGeneration, "Failed to generate QR code").WithCause(cause)
	if cause != nil {
		e.Details = fmt.Sprintf("%s: %v", stage, cause)
	} else {
		e.Details = stage
	}
	return e
}
