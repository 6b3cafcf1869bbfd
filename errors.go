package sqlkit

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for the builder and adaptation layers.
var (
	// ErrTypeMismatch is returned when a Go value cannot be adapted
	// to the requested column type.
	ErrTypeMismatch = errors.New("sqlkit: value does not match column type")

	// ErrInvalidIdentifier is returned when a column or table
	// reference cannot be parsed.
	ErrInvalidIdentifier = errors.New("sqlkit: invalid identifier")

	// ErrUnsupported is returned when a statement uses a construct
	// the target dialect cannot express.
	ErrUnsupported = errors.New("sqlkit: operation not supported by dialect")

	// ErrStructure is returned when a statement is structurally
	// malformed, regardless of the target dialect.
	ErrStructure = errors.New("sqlkit: malformed statement")
)

// TypeMismatchError reports a failed value adaptation.
type TypeMismatchError struct {
	expected string // Name of the expected column type
	value    any    // The offending value
	reason   string // Optional: why the value was rejected
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	if e.reason != "" {
		return fmt.Sprintf("sqlkit: cannot adapt %v (%T) to %s: %s", e.value, e.value, e.expected, e.reason)
	}
	return fmt.Sprintf("sqlkit: cannot adapt %v (%T) to %s", e.value, e.value, e.expected)
}

// Is reports whether the target error matches TypeMismatchError.
// This allows errors.Is(err, ErrTypeMismatch) to return true.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// Expected returns the name of the expected column type.
func (e *TypeMismatchError) Expected() string {
	return e.expected
}

// Value returns the value that failed adaptation.
func (e *TypeMismatchError) Value() any {
	return e.value
}

// NewTypeMismatchError returns a new TypeMismatchError for the given
// expected type and offending value.
func NewTypeMismatchError(expected string, value any) *TypeMismatchError {
	return &TypeMismatchError{expected: expected, value: value}
}

// NewTypeMismatchErrorReason returns a new TypeMismatchError with an
// explanation of why the value was rejected.
func NewTypeMismatchErrorReason(expected string, value any, reason string) *TypeMismatchError {
	return &TypeMismatchError{expected: expected, value: value, reason: reason}
}

// IsTypeMismatch returns true if the error is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	if err == nil {
		return false
	}
	var e *TypeMismatchError
	return errors.As(err, &e) || errors.Is(err, ErrTypeMismatch)
}

// InvalidIdentifierError reports an identifier that could not be parsed.
type InvalidIdentifierError struct {
	input  string // The raw input
	reason string // Why parsing failed
}

// Error returns the error string.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("sqlkit: invalid identifier %q: %s", e.input, e.reason)
}

// Is reports whether the target error matches InvalidIdentifierError.
// This allows errors.Is(err, ErrInvalidIdentifier) to return true.
func (e *InvalidIdentifierError) Is(err error) bool {
	return err == ErrInvalidIdentifier
}

// Input returns the raw input that failed to parse.
func (e *InvalidIdentifierError) Input() string {
	return e.input
}

// NewInvalidIdentifierError returns a new InvalidIdentifierError for the
// given input.
func NewInvalidIdentifierError(input, reason string) *InvalidIdentifierError {
	return &InvalidIdentifierError{input: input, reason: reason}
}

// IsInvalidIdentifier returns true if the error is an InvalidIdentifierError.
func IsInvalidIdentifier(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidIdentifierError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidIdentifier)
}

// UnsupportedOperationError reports a construct the target dialect
// cannot express, identifying both sides of the mismatch.
type UnsupportedOperationError struct {
	op      string // The construct, e.g. "operator <@" or "type interval"
	dialect string // The dialect that rejected it
}

// Error returns the error string.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("sqlkit: %s is not supported on %s", e.op, e.dialect)
}

// Is reports whether the target error matches UnsupportedOperationError.
// This allows errors.Is(err, ErrUnsupported) to return true.
func (e *UnsupportedOperationError) Is(err error) bool {
	return err == ErrUnsupported
}

// Op returns the unsupported construct.
func (e *UnsupportedOperationError) Op() string {
	return e.op
}

// Dialect returns the dialect that rejected the construct.
func (e *UnsupportedOperationError) Dialect() string {
	return e.dialect
}

// NewUnsupportedOperationError returns a new UnsupportedOperationError
// for the given construct and dialect.
func NewUnsupportedOperationError(op, dialect string) *UnsupportedOperationError {
	return &UnsupportedOperationError{op: op, dialect: dialect}
}

// IsUnsupported returns true if the error is an UnsupportedOperationError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedOperationError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// StructuralError reports a statement that is malformed independently
// of the target dialect, such as a VALUES row whose length differs from
// the column list.
type StructuralError struct {
	msg string
}

// Error returns the error string.
func (e *StructuralError) Error() string {
	return fmt.Sprintf("sqlkit: %s", e.msg)
}

// Is reports whether the target error matches StructuralError.
// This allows errors.Is(err, ErrStructure) to return true.
func (e *StructuralError) Is(err error) bool {
	return err == ErrStructure
}

// NewStructuralError returns a new StructuralError with the given message.
func NewStructuralError(format string, args ...any) *StructuralError {
	return &StructuralError{msg: fmt.Sprintf(format, args...)}
}

// IsStructural returns true if the error is a StructuralError.
func IsStructural(err error) bool {
	if err == nil {
		return false
	}
	var e *StructuralError
	return errors.As(err, &e) || errors.Is(err, ErrStructure)
}
