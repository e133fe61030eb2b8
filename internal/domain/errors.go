package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedPayload    = errors.New("malformed request payload")
	ErrMissingField        = errors.New("missing required field")
	ErrNegativeSkipCount   = errors.New("skipCount must not be negative")
	ErrUnparseableDeadline = errors.New("deadline is not a valid date-time")
	ErrHourOutOfRange      = errors.New("hour out of range [0, 23]")
)

// ErrorKind classifies a failed predict call.
type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "ValidationError"
	ErrorKindParse      ErrorKind = "ParseError"
)

func (k ErrorKind) String() string {
	return string(k)
}

type PredictionError struct {
	Kind  ErrorKind
	Field string
	Err   error
}

func NewValidationError(field string, err error) *PredictionError {
	return &PredictionError{Kind: ErrorKindValidation, Field: field, Err: err}
}

func NewParseError(field string, err error) *PredictionError {
	return &PredictionError{Kind: ErrorKindParse, Field: field, Err: err}
}

func (e *PredictionError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a PredictionError anywhere in err's chain.
// Errors that are not PredictionErrors are reported as validation errors.
func KindOf(err error) ErrorKind {
	var pe *PredictionError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrorKindValidation
}
