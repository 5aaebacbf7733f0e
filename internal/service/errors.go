package service

import "fmt"

// Error taxonomy. Every error a service returns is one of these three;
// handlers map them to HTTP status codes. Nothing here is fatal to the
// process — failed operations are surfaced and abandoned, never retried.

// ValidationError: a required field is missing or a value is out of
// range. Recovered locally, shown inline next to the field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for f, msg := range e.Fields {
		return fmt.Sprintf("%s: %s", f, msg)
	}
	return "dữ liệu không hợp lệ"
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InvalidStateError: the operation is not legal in the entity's current
// lifecycle state (e.g. completing a transaction with zero weights).
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

// PersistenceError: a remote store call failed. Surfaced as a
// dismissable alert; the operation is not retried automatically.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
