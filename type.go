package binding

import (
	"strings"

	"github.com/openbindings/binding-go/typename"
)

// Capability identifies a binding implementation, such as "resource" or
// "class". A Type accepts bindings of exactly one capability.
type Capability string

// Type is the schema bindings are initialized against. It names the
// capability it accepts and declares the parameters its bindings may set.
// A Type is immutable and may be shared between bindings.
type Type struct {
	name    string
	accepts Capability
	params  []*Parameter
	index   map[string]int
}

// NewType creates a binding type.
//
// Parameter names must be unique; a duplicate is rejected rather than
// silently replacing the earlier declaration.
func NewType(name string, accepts Capability, params ...*Parameter) (*Type, error) {
	if err := typename.Validate(name); err != nil {
		return nil, invalidArgument("%v", err)
	}
	if strings.TrimSpace(string(accepts)) == "" {
		return nil, invalidArgument("type %q: accepted capability must not be empty", name)
	}

	t := &Type{
		name:    name,
		accepts: accepts,
		params:  make([]*Parameter, 0, len(params)),
		index:   make(map[string]int, len(params)),
	}
	for i, p := range params {
		if p == nil {
			return nil, invalidArgument("type %q: parameter %d is nil", name, i)
		}
		if _, dup := t.index[p.Name()]; dup {
			return nil, invalidArgument("type %q: duplicate parameter %q", name, p.Name())
		}
		t.index[p.Name()] = len(t.params)
		t.params = append(t.params, p)
	}
	return t, nil
}

// MustType is like NewType but panics on error.
func MustType(name string, accepts Capability, params ...*Parameter) *Type {
	t, err := NewType(name, accepts, params...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// AcceptedCapability returns the capability of the bindings this type accepts.
func (t *Type) AcceptedCapability() Capability { return t.accepts }

// Accepts reports whether b may be initialized with this type.
func (t *Type) Accepts(b Binding) bool {
	return !isNil(b) && b.Capability() == t.accepts
}

// Parameter returns the declaration with the given name.
func (t *Type) Parameter(name string) (*Parameter, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &NoSuchParameterError{Name: name, TypeName: t.name}
	}
	return t.params[i], nil
}

// Parameters returns the declarations in declaration order.
func (t *Type) Parameters() []*Parameter {
	out := make([]*Parameter, len(t.params))
	copy(out, t.params)
	return out
}

// HasParameter reports whether a parameter with the given name is declared.
func (t *Type) HasParameter(name string) bool {
	_, ok := t.index[name]
	return ok
}

// HasParameters reports whether the type declares any parameter.
func (t *Type) HasParameters() bool { return len(t.params) > 0 }

// HasRequiredParameters reports whether any declared parameter is required.
func (t *Type) HasRequiredParameters() bool {
	for _, p := range t.params {
		if p.IsRequired() {
			return true
		}
	}
	return false
}

// HasOptionalParameters reports whether any declared parameter is optional.
func (t *Type) HasOptionalParameters() bool {
	for _, p := range t.params {
		if p.IsOptional() {
			return true
		}
	}
	return false
}

// ParameterDefaults returns the default value of every optional parameter,
// keyed by name.
func (t *Type) ParameterDefaults() map[string]any {
	out := make(map[string]any, len(t.params))
	for _, p := range t.params {
		if p.IsOptional() {
			out[p.Name()] = p.DefaultValue()
		}
	}
	return out
}

func (t *Type) String() string { return t.name }
