package binding

import (
	"fmt"
	"regexp"
)

// Values for the required argument of NewParameter.
const (
	Optional = false
	Required = true
)

var parameterNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// Parameter declares a parameter that bindings of a Type may or must set.
// A Parameter is immutable.
type Parameter struct {
	name         string
	required     bool
	defaultValue any
}

// NewParameter creates a parameter declaration.
//
// The name must contain letters and digits only and start with a letter.
// Required parameters must not have a default value.
func NewParameter(name string, required bool, defaultValue any) (*Parameter, error) {
	if err := validateParameterName(name); err != nil {
		return nil, err
	}
	if required && defaultValue != nil {
		return nil, invalidArgument("parameter %q: required parameters must not have default values", name)
	}
	return &Parameter{name: name, required: required, defaultValue: defaultValue}, nil
}

// MustParameter is like NewParameter but panics on error.
func MustParameter(name string, required bool, defaultValue any) *Parameter {
	p, err := NewParameter(name, required, defaultValue)
	if err != nil {
		panic(err)
	}
	return p
}

func validateParameterName(name string) error {
	if name == "" {
		return invalidArgument("the parameter name must not be empty")
	}
	if !parameterNameRe.MatchString(name) {
		return invalidArgument("the parameter name must contain letters and digits only and start with a letter, got %q", name)
	}
	return nil
}

// IsValidParameterName reports whether name is acceptable to NewParameter.
func IsValidParameterName(name string) bool {
	return validateParameterName(name) == nil
}

// Name returns the parameter name.
func (p *Parameter) Name() string { return p.name }

// IsRequired reports whether bindings must set the parameter.
func (p *Parameter) IsRequired() bool { return p.required }

// IsOptional is the inverse of IsRequired.
func (p *Parameter) IsOptional() bool { return !p.required }

// DefaultValue returns the value filled in when an optional parameter is not
// set. It is always nil for required parameters.
func (p *Parameter) DefaultValue() any { return p.defaultValue }

func (p *Parameter) String() string {
	if p.required {
		return fmt.Sprintf("%s (required)", p.name)
	}
	return fmt.Sprintf("%s (optional, default %v)", p.name, p.defaultValue)
}
