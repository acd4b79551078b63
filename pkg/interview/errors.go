package interview

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("interview not found")
	ErrUpstreamUnavailable = errors.New("completion service unavailable")
	ErrEmptyGeneration     = errors.New("model returned no questions")
	ErrParse               = errors.New("could not parse model response")
	ErrIncompleteSession   = errors.New("you must complete the interview before viewing ideal answers")
	ErrConflict            = errors.New("interview was modified concurrently")
)

const maxRawLen = 2000

// RawError carries the model output (or upstream error) that caused a failure.
// errors.Is matches both Kind and the wrapped cause.
type RawError struct {
	Kind error
	Raw  string
	Err  error
}

func (e *RawError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *RawError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newRawError(kind error, raw string, err error) *RawError {
	r := []rune(raw)
	if len(r) > maxRawLen {
		raw = string(r[:maxRawLen])
	}
	return &RawError{Kind: kind, Raw: raw, Err: err}
}

// Raw returns the diagnostic payload attached to err, if any.
func Raw(err error) string {
	var re *RawError
	if errors.As(err, &re) {
		return re.Raw
	}
	return ""
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
