package binding

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	// ErrInvalidArgument reports malformed names, a required parameter with a
	// default, a binding the type does not accept, or a type-name mismatch.
	ErrInvalidArgument = errors.New("binding: invalid argument")
	// ErrNoSuchParameter reports a parameter name that is not declared, or
	// not present under the requested filtering.
	ErrNoSuchParameter = errors.New("binding: no such parameter")
	// ErrMissingParameter reports a required parameter with no supplied value.
	ErrMissingParameter = errors.New("binding: missing parameter")
	// ErrNotInitialized reports access to the bound type before Initialize succeeded.
	ErrNotInitialized = errors.New("binding: not initialized")
)

// NoSuchParameterError is returned when a parameter name cannot be found.
// TypeName is empty when the lookup was against a binding's values rather
// than a type's declarations.
type NoSuchParameterError struct {
	Name     string
	TypeName string
}

func (e *NoSuchParameterError) Error() string {
	if e.TypeName == "" {
		return fmt.Sprintf("binding: no such parameter %q", e.Name)
	}
	return fmt.Sprintf("binding: type %q has no parameter %q", e.TypeName, e.Name)
}

func (e *NoSuchParameterError) Unwrap() error { return ErrNoSuchParameter }

// MissingParameterError is returned by Initialize when a required parameter
// has no value.
type MissingParameterError struct {
	Name     string
	TypeName string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("binding: missing value for required parameter %q of type %q", e.Name, e.TypeName)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// NotAcceptedError is returned by Initialize when the type does not accept
// bindings of the binding's capability.
type NotAcceptedError struct {
	TypeName   string
	Capability Capability
	Accepted   Capability
}

func (e *NotAcceptedError) Error() string {
	return fmt.Sprintf("binding: type %q accepts %q bindings, got %q", e.TypeName, e.Accepted, e.Capability)
}

func (e *NotAcceptedError) Unwrap() error { return ErrInvalidArgument }

// TypeMismatchError is returned by Initialize when the binding expects a
// different type than the one it is initialized with.
type TypeMismatchError struct {
	Expected string // the binding's type name
	Actual   string // the type passed to Initialize
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("binding: binding of type %q cannot be initialized with type %q", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrInvalidArgument }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}
