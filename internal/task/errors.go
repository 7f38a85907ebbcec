package task

import (
	"errors"
	"fmt"
)

// Sentinel outcomes shared by the store, the model gateways and the orchestrator.
var (
	// ErrPrecondition is returned when a required input is blank. No collaborator is called.
	ErrPrecondition = errors.New("required input is empty")

	// ErrEmptyResult means the collaborator answered but produced nothing usable.
	// It is not a failure of the collaborator.
	ErrEmptyResult = errors.New("no usable items produced")

	// ErrNotFound is returned for an unknown task id.
	ErrNotFound = errors.New("not found")
)

// TransportError reports a failure reaching a collaborator (network, auth, driver).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return e.Op + ": transport failure"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports data that does not have the expected shape.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "invalid " + msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidDraft reports whether err is a ValidationError raised by Draft.Validate
// or ParsePriority, as opposed to one describing a collaborator's reply.
func IsInvalidDraft(err error) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return ve.Field == FieldTitle || ve.Field == FieldPriority
}

// Transport wraps err as a TransportError for op. Nil stays nil.
func Transport(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}
