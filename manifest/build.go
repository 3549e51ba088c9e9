package manifest

import (
	"fmt"

	binding "github.com/openbindings/binding-go"
)

// Bundle holds the types and bindings built from a manifest.
type Bundle struct {
	// Types are sorted by name.
	Types []*binding.Type
	// Bindings are in document order and uninitialized.
	Bindings []binding.Binding
}

func (d TypeDecl) build(name string) (*binding.Type, error) {
	params := make([]*binding.Parameter, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		param, err := binding.NewParameter(p.Name, p.Required, p.Default)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return binding.NewType(name, binding.Capability(d.Accepts), params...)
}

// Build constructs the declared types and decodes the bindings with c, or
// with the default codec if c is nil. It stops at the first error; use
// Validate to collect every problem.
func (m Manifest) Build(c *binding.Codec) (*Bundle, error) {
	out := &Bundle{
		Types:    make([]*binding.Type, 0, len(m.Types)),
		Bindings: make([]binding.Binding, 0, len(m.Bindings)),
	}
	for _, name := range sortedKeys(m.Types) {
		t, err := m.Types[name].build(name)
		if err != nil {
			return nil, fmt.Errorf("manifest: types[%q]: %w", name, err)
		}
		out.Types = append(out.Types, t)
	}
	for idx, e := range m.Bindings {
		b, err := e.Decode(c)
		if err != nil {
			return nil, fmt.Errorf("manifest: bindings[%d]: %w", idx, err)
		}
		out.Bindings = append(out.Bindings, b)
	}
	return out, nil
}

// Add appends b to the manifest's bindings, encoded with c or the default codec.
func (m *Manifest) Add(c *binding.Codec, b binding.Binding) error {
	e, err := NewBindingEntry(c, b)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	m.Bindings = append(m.Bindings, e)
	return nil
}

// DeclareType adds or replaces the declaration of t.
func (m *Manifest) DeclareType(t *binding.Type) {
	decl := TypeDecl{Accepts: string(t.AcceptedCapability())}
	for _, p := range t.Parameters() {
		decl.Parameters = append(decl.Parameters, ParameterDecl{
			Name:     p.Name(),
			Required: p.IsRequired(),
			Default:  p.DefaultValue(),
		})
	}
	if m.Types == nil {
		m.Types = map[string]TypeDecl{}
	}
	m.Types[t.Name()] = decl
}
