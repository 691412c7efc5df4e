package vectorstore

import (
	"errors"
	"fmt"
)

// ErrModelNotFound is returned by FileSource when no candidate directory holds both tables.
var ErrModelNotFound = errors.New("embedding model files not found")

// ErrDimensionMismatch indicates a vector whose length differs from the store dimension.
type ErrDimensionMismatch struct {
	Table    string
	Key      string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("%s table: vector %q has dimension %d, expected %d", e.Table, e.Key, e.Actual, e.Expected)
}

// ErrCorruptTable indicates a row that could not be parsed.
//
// The underlying parse error, if any, is available via errors.Unwrap.
type ErrCorruptTable struct {
	Table  string
	Line   int
	Reason string
	cause  error
}

func (e *ErrCorruptTable) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s table line %d: %s", e.Table, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s table: %s", e.Table, e.Reason)
}

func (e *ErrCorruptTable) Unwrap() error { return e.cause }
