package confspec

import (
	"errors"
	"fmt"
)

// Sentinel errors for common engine failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidSchema indicates a schema description is malformed: bad
	// parameter names, bad property types, an unrecognized value type, or
	// a constant parameter with no default.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrInvalidValues indicates supplied option values failed presence or
	// type validation against a manifest.
	ErrInvalidValues = errors.New("invalid values")

	// ErrBadArgument indicates API misuse, such as looking up a parameter
	// by a name that is not a valid identifier.
	ErrBadArgument = errors.New("bad argument")

	// ErrComponentNotFound indicates the requested component was not found
	// in the lifecycle registry.
	ErrComponentNotFound = errors.New("component not found")
)

// Error kinds categorize errors by their type.
const (
	// KindSchema represents malformed schema descriptions. Schema errors
	// are fatal to the operation that raised them and are never partially
	// applied.
	KindSchema = "schema"

	// KindValidation represents bad or missing input values at apply time.
	// Validation errors aggregate every offending parameter into a single
	// message.
	KindValidation = "validation"

	// KindArgument represents API misuse.
	KindArgument = "argument"

	// KindLifecycle represents component start/stop failures.
	KindLifecycle = "lifecycle"
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed and the category of error.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "manifest.New", "Manifest.Apply").
	Op string

	// Kind categorizes the error (e.g., KindSchema, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("confspec: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("confspec: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and
// errors.As() to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison against
// another Error by kind (and op, when the target sets one) or against the
// underlying error chain.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// NewSchemaError creates a new Error with KindSchema. The underlying error
// chain includes ErrInvalidSchema.
func NewSchemaError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindSchema,
		Err:  wrapSentinel(ErrInvalidSchema, err),
	}
}

// NewValidationError creates a new Error with KindValidation. The
// underlying error chain includes ErrInvalidValues.
func NewValidationError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindValidation,
		Err:  wrapSentinel(ErrInvalidValues, err),
	}
}

// NewArgumentError creates a new Error with KindArgument. The underlying
// error chain includes ErrBadArgument.
func NewArgumentError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindArgument,
		Err:  wrapSentinel(ErrBadArgument, err),
	}
}

// NewLifecycleError creates a new Error with KindLifecycle.
func NewLifecycleError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Kind: KindLifecycle,
		Err:  err,
	}
}

// wrapSentinel attaches the category sentinel to err so that both
// errors.Is(e, sentinel) and the detailed message survive.
func wrapSentinel(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
