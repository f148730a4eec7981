package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDataset means a query's input group is empty after filtering.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrDivisionByZero means a rate was requested over a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMissingReference matches any *MissingReferenceError via errors.Is.
	ErrMissingReference = errors.New("missing reference")
)

// MissingReferenceError reports a key that does not resolve to a record.
// Kind is "match" or "player".
type MissingReferenceError struct {
	Kind        string
	Key         string
	Suggestions []string
}

func (e *MissingReferenceError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.Kind, e.Key)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *MissingReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}
