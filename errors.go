package ofx

import (
	"errors"
	"fmt"
)

// ErrMissingField marks a required column that is absent or blank.
var ErrMissingField = errors.New("missing required field")

// UnknownKindError reports a row whose txn_type column names no known kind.
type UnknownKindError struct {
	Row  int // 1-based data row number
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("row %d: unknown transaction type %q", e.Row, e.Kind)
}

// FieldError reports a row field that is missing or failed to parse.
type FieldError struct {
	Row   int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: field %q: %v", e.Row, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
