package binding

import (
	"encoding/json"
	"maps"
	"reflect"
	"sort"

	"github.com/openbindings/binding-go/typename"
)

// Binding pairs a type name with parameter values. A binding is created
// without its Type and validated against it later by Initialize.
//
// Implementations embed *Base, which carries the initialization protocol.
type Binding interface {
	// Capability identifies the binding implementation.
	Capability() Capability
	// TypeName returns the name of the type the binding expects.
	TypeName() string
	// Initialize validates the binding against t and fills in defaults.
	Initialize(t *Type) error
	// IsInitialized reports whether Initialize has succeeded.
	IsInitialized() bool
	// Type returns the type passed to the last successful Initialize.
	Type() (*Type, error)
	// ParameterValues returns the parameter values keyed by name.
	ParameterValues(opts ...ValueOption) map[string]any
	// HasParameterValue reports whether a value is set for name.
	HasParameterValue(name string, opts ...ValueOption) bool
	// ParameterValue returns the value for name.
	ParameterValue(name string, opts ...ValueOption) (any, error)
}

type valueOptions struct {
	excludeDefaults bool
}

// ValueOption configures the parameter value accessors.
type ValueOption func(*valueOptions)

// WithoutDefaults restricts the accessors to values that were supplied when
// the binding was created, hiding values filled in from parameter defaults.
func WithoutDefaults() ValueOption {
	return func(o *valueOptions) { o.excludeDefaults = true }
}

func applyValueOptions(opts []ValueOption) valueOptions {
	var o valueOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Base implements Binding. Embed *Base to build a binding kind.
//
// Base is not safe for concurrent use: construct and initialize a binding
// before sharing it with readers.
type Base struct {
	kind     Capability
	typeName string

	// supplied holds the values passed at construction. It is the only
	// value state that is serialized and validated by Initialize.
	supplied map[string]any

	// merged is supplied plus defaults, set by a successful Initialize.
	merged map[string]any
	typ    *Type
}

// NewBase creates an uninitialized binding of the given capability.
// The values are stored in the form encoding/json decodes them to: numbers
// become float64, slices []any and maps map[string]any. Values JSON cannot
// encode are rejected.
func NewBase(kind Capability, typeName string, values map[string]any) (*Base, error) {
	if kind == "" {
		return nil, invalidArgument("binding capability must not be empty")
	}
	if err := typename.Validate(typeName); err != nil {
		return nil, invalidArgument("%v", err)
	}
	supplied, err := normalizeValues(values)
	if err != nil {
		return nil, invalidArgument("parameter values of binding of type %q: %v", typeName, err)
	}
	return &Base{kind: kind, typeName: typeName, supplied: supplied}, nil
}

// normalizeValues copies values through encoding/json so that a decoded
// binding carries the same values as the one that was encoded.
func normalizeValues(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	if len(values) == 0 {
		return out, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// isNil reports whether b is nil or a nil pointer wrapped in the interface.
func isNil(b Binding) bool {
	if b == nil {
		return true
	}
	v := reflect.ValueOf(b)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Capability returns the capability given to NewBase, or "" for a nil Base.
func (b *Base) Capability() Capability {
	if b == nil {
		return ""
	}
	return b.kind
}

// TypeName returns the name of the type the binding expects.
func (b *Base) TypeName() string { return b.typeName }

// IsInitialized reports whether Initialize has succeeded.
func (b *Base) IsInitialized() bool { return b.typ != nil }

// Type returns the type passed to the last successful Initialize, or
// ErrNotInitialized.
func (b *Base) Type() (*Type, error) {
	if b.typ == nil {
		return nil, ErrNotInitialized
	}
	return b.typ, nil
}

// Initialize validates the supplied values against t and merges in the
// defaults of optional parameters that were not supplied.
//
// Checks run in order and the first failure is returned: t must accept the
// binding's capability (NotAcceptedError), t must carry the binding's type
// name (TypeMismatchError), every supplied name must be declared
// (NoSuchParameterError) and every required parameter must be supplied
// (MissingParameterError). On failure the binding is left unchanged.
//
// Initialize may be called again, possibly with another type. Validation
// always runs against the values supplied at construction.
func (b *Base) Initialize(t *Type) error {
	if t == nil {
		return invalidArgument("cannot initialize binding of type %q with a nil type", b.typeName)
	}
	if t.AcceptedCapability() != b.kind {
		return &NotAcceptedError{TypeName: t.Name(), Capability: b.kind, Accepted: t.AcceptedCapability()}
	}
	if t.Name() != b.typeName {
		return &TypeMismatchError{Expected: b.typeName, Actual: t.Name()}
	}

	names := make([]string, 0, len(b.supplied))
	for name := range b.supplied {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !t.HasParameter(name) {
			return &NoSuchParameterError{Name: name, TypeName: t.Name()}
		}
	}

	merged := make(map[string]any, len(t.params))
	for _, p := range t.params {
		if v, ok := b.supplied[p.Name()]; ok {
			merged[p.Name()] = v
			continue
		}
		if p.IsRequired() {
			return &MissingParameterError{Name: p.Name(), TypeName: t.Name()}
		}
		merged[p.Name()] = p.DefaultValue()
	}

	b.merged = merged
	b.typ = t
	return nil
}

func (b *Base) view(o valueOptions) map[string]any {
	if b.typ == nil || o.excludeDefaults {
		return b.supplied
	}
	return b.merged
}

// ParameterValues returns a copy of the parameter values. After
// initialization the result includes defaults unless WithoutDefaults is given.
func (b *Base) ParameterValues(opts ...ValueOption) map[string]any {
	return maps.Clone(b.view(applyValueOptions(opts)))
}

// HasParameterValue reports whether a value is set for name, honoring
// WithoutDefaults.
func (b *Base) HasParameterValue(name string, opts ...ValueOption) bool {
	_, ok := b.view(applyValueOptions(opts))[name]
	return ok
}

// ParameterValue returns the value for name, which may be nil. It returns a
// NoSuchParameterError if no value is set under the requested filtering.
func (b *Base) ParameterValue(name string, opts ...ValueOption) (any, error) {
	v, ok := b.view(applyValueOptions(opts))[name]
	if !ok {
		return nil, &NoSuchParameterError{Name: name}
	}
	return v, nil
}

var errNoBase = invalidArgument("binding was not created by a constructor")

// baseWire is the serialized form shared by all kinds. It never carries the
// bound type or the merged values.
type baseWire struct {
	Kind       Capability     `json:"kind"`
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (b *Base) wire() baseWire {
	return baseWire{Kind: b.kind, Type: b.typeName, Parameters: b.supplied}
}

func (w baseWire) base() (*Base, error) {
	return NewBase(w.Kind, w.Type, w.Parameters)
}

// MarshalJSON encodes the capability, type name and supplied values.
func (b *Base) MarshalJSON() ([]byte, error) {
	if b == nil {
		return nil, errNoBase
	}
	return json.Marshal(b.wire())
}

// UnmarshalJSON decodes a binding serialized by MarshalJSON. The result is
// always uninitialized.
func (b *Base) UnmarshalJSON(data []byte) error {
	var w baseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	nb, err := w.base()
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}
