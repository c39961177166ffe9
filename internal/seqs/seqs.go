// Package seqs provides helpers for working with parallel sequences, i.e.
// slices whose elements correspond to each other by index (ids[i] belongs to
// names[i]).
//
// A length mismatch between parallel sequences is a contract violation by the
// caller. It is reported with DifferentLengthOfArraysError and never repaired:
// the helpers in this package do not truncate the longer slice, pad the
// shorter one, or return a partial result.
package seqs

import (
	"errors"
	"fmt"
)

// ErrDifferentLengthOfArrays is the sentinel matched (via errors.Is) by every
// DifferentLengthOfArraysError, regardless of its message.
var ErrDifferentLengthOfArrays = errors.New("different length of arrays")

// DifferentLengthOfArraysError reports that two sequences which must have
// equal length do not. Message is optional and passed through as given.
type DifferentLengthOfArraysError struct {
	Message string
}

// NewDifferentLengthOfArraysError builds the fault with an optional message.
// Only the first message is used.
func NewDifferentLengthOfArraysError(msg ...string) *DifferentLengthOfArraysError {
	e := &DifferentLengthOfArraysError{}
	if len(msg) > 0 {
		e.Message = msg[0]
	}
	return e
}

// Error implements error.
func (e *DifferentLengthOfArraysError) Error() string {
	if e.Message == "" {
		return ErrDifferentLengthOfArrays.Error()
	}
	return e.Message
}

// Is makes errors.Is(err, ErrDifferentLengthOfArrays) true for any instance.
func (e *DifferentLengthOfArraysError) Is(target error) bool {
	return target == ErrDifferentLengthOfArrays
}

// RequireSameLength returns a DifferentLengthOfArraysError carrying msg when
// a != b, nil otherwise.
func RequireSameLength(a, b int, msg string) error {
	if a != b {
		return NewDifferentLengthOfArraysError(msg)
	}
	return nil
}

// Pair is one index-aligned element of two zipped sequences.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs as[i] with bs[i]. On a length mismatch it returns nil and a
// DifferentLengthOfArraysError describing both lengths.
func Zip[A, B any](as []A, bs []B) ([]Pair[A, B], error) {
	if len(as) != len(bs) {
		return nil, NewDifferentLengthOfArraysError(
			fmt.Sprintf("sequences must have equal length: got %d and %d", len(as), len(bs)),
		)
	}
	out := make([]Pair[A, B], len(as))
	for i := range as {
		out[i] = Pair[A, B]{First: as[i], Second: bs[i]}
	}
	return out, nil
}
