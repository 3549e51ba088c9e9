package binding

import (
	"encoding/json"
	"strings"
)

// Built-in capabilities.
const (
	// CapabilityResource identifies ResourceBinding.
	CapabilityResource Capability = "resource"
	// CapabilityClass identifies ClassBinding.
	CapabilityClass Capability = "class"
)

// DefaultQueryLanguage is the language of resource queries unless WithLanguage is given.
const DefaultQueryLanguage = "glob"

// ResourceBinding binds the resources matched by a query to a type.
type ResourceBinding struct {
	*Base
	query    string
	language string
}

// ResourceOption configures NewResourceBinding.
type ResourceOption func(*ResourceBinding)

// WithLanguage sets the query language.
func WithLanguage(language string) ResourceOption {
	return func(r *ResourceBinding) { r.language = language }
}

// NewResourceBinding creates an uninitialized resource binding.
func NewResourceBinding(query, typeName string, values map[string]any, opts ...ResourceOption) (*ResourceBinding, error) {
	base, err := NewBase(CapabilityResource, typeName, values)
	if err != nil {
		return nil, err
	}
	r := &ResourceBinding{Base: base, query: query, language: DefaultQueryLanguage}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if strings.TrimSpace(r.query) == "" {
		return nil, invalidArgument("the resource query must not be empty")
	}
	if strings.TrimSpace(r.language) == "" {
		return nil, invalidArgument("the query language must not be empty")
	}
	return r, nil
}

// Query returns the resource query.
func (r *ResourceBinding) Query() string { return r.query }

// Language returns the language of the query.
func (r *ResourceBinding) Language() string { return r.language }

type resourceWire struct {
	baseWire
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

func (r *ResourceBinding) MarshalJSON() ([]byte, error) {
	if r == nil || r.Base == nil {
		return nil, errNoBase
	}
	return json.Marshal(resourceWire{baseWire: r.wire(), Query: r.query, Language: r.language})
}

func (r *ResourceBinding) UnmarshalJSON(data []byte) error {
	var w resourceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Kind != "" && w.Kind != CapabilityResource {
		return invalidArgument("cannot decode %q binding as %q", w.Kind, CapabilityResource)
	}
	var opts []ResourceOption
	if w.Language != "" {
		opts = append(opts, WithLanguage(w.Language))
	}
	nr, err := NewResourceBinding(w.Query, w.Type, w.Parameters, opts...)
	if err != nil {
		return err
	}
	*r = *nr
	return nil
}

// ClassBinding binds an implementation, identified by its fully-qualified
// class name, to a type.
type ClassBinding struct {
	*Base
	className string
}

// NewClassBinding creates an uninitialized class binding.
func NewClassBinding(className, typeName string, values map[string]any) (*ClassBinding, error) {
	if strings.TrimSpace(className) == "" || strings.ContainsAny(className, " \t\r\n") {
		return nil, invalidArgument("invalid class name %q", className)
	}
	base, err := NewBase(CapabilityClass, typeName, values)
	if err != nil {
		return nil, err
	}
	return &ClassBinding{Base: base, className: className}, nil
}

// ClassName returns the bound class name.
func (c *ClassBinding) ClassName() string { return c.className }

type classWire struct {
	baseWire
	Class string `json:"class"`
}

func (c *ClassBinding) MarshalJSON() ([]byte, error) {
	if c == nil || c.Base == nil {
		return nil, errNoBase
	}
	return json.Marshal(classWire{baseWire: c.wire(), Class: c.className})
}

func (c *ClassBinding) UnmarshalJSON(data []byte) error {
	var w classWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Kind != "" && w.Kind != CapabilityClass {
		return invalidArgument("cannot decode %q binding as %q", w.Kind, CapabilityClass)
	}
	nc, err := NewClassBinding(w.Class, w.Type, w.Parameters)
	if err != nil {
		return err
	}
	*c = *nc
	return nil
}
