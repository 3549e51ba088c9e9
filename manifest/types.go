package manifest

import (
	"encoding/json"
	"errors"

	binding "github.com/openbindings/binding-go"
)

var (
	knownManifest  = jsonFields(manifestWire{})
	knownType      = jsonFields(typeWire{})
	knownParameter = jsonFields(parameterWire{})
)

// Manifest is a document declaring binding types and bindings.
type Manifest struct {
	// Manifest is the document format version, e.g. "1.0.0".
	Manifest    string `json:"manifest"`
	Description string `json:"description,omitempty"`

	// Types maps type names to their declarations.
	Types map[string]TypeDecl `json:"types,omitempty"`

	// Bindings holds bindings in the codec's JSON form.
	Bindings []BindingEntry `json:"bindings,omitempty"`

	LosslessFields
}

type manifestWire struct {
	Manifest    string              `json:"manifest"`
	Description string              `json:"description,omitempty"`
	Types       map[string]TypeDecl `json:"types,omitempty"`
	Bindings    []BindingEntry      `json:"bindings,omitempty"`
}

func (m *Manifest) UnmarshalJSON(b []byte) error {
	w, lf, err := decodeLossless[manifestWire](b, knownManifest)
	if err != nil {
		return err
	}
	*m = Manifest{
		Manifest:       w.Manifest,
		Description:    w.Description,
		Types:          w.Types,
		Bindings:       w.Bindings,
		LosslessFields: lf,
	}
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	return encodeLossless(manifestWire{
		Manifest:    m.Manifest,
		Description: m.Description,
		Types:       m.Types,
		Bindings:    m.Bindings,
	}, m.LosslessFields)
}

// TypeDecl declares a binding type.
type TypeDecl struct {
	// Accepts is the capability of the bindings the type accepts.
	Accepts     string          `json:"accepts"`
	Description string          `json:"description,omitempty"`
	Parameters  []ParameterDecl `json:"parameters,omitempty"`

	LosslessFields
}

type typeWire struct {
	Accepts     string          `json:"accepts"`
	Description string          `json:"description,omitempty"`
	Parameters  []ParameterDecl `json:"parameters,omitempty"`
}

func (t *TypeDecl) UnmarshalJSON(b []byte) error {
	w, lf, err := decodeLossless[typeWire](b, knownType)
	if err != nil {
		return err
	}
	*t = TypeDecl{
		Accepts:        w.Accepts,
		Description:    w.Description,
		Parameters:     w.Parameters,
		LosslessFields: lf,
	}
	return nil
}

func (t TypeDecl) MarshalJSON() ([]byte, error) {
	return encodeLossless(typeWire{
		Accepts:     t.Accepts,
		Description: t.Description,
		Parameters:  t.Parameters,
	}, t.LosslessFields)
}

// ParameterDecl declares a parameter of a type. A missing or null default
// means the parameter has no default.
type ParameterDecl struct {
	Name        string `json:"name"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`

	LosslessFields
}

type parameterWire struct {
	Name        string `json:"name"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

func (p *ParameterDecl) UnmarshalJSON(b []byte) error {
	w, lf, err := decodeLossless[parameterWire](b, knownParameter)
	if err != nil {
		return err
	}
	*p = ParameterDecl{
		Name:           w.Name,
		Required:       w.Required,
		Default:        w.Default,
		Description:    w.Description,
		LosslessFields: lf,
	}
	return nil
}

func (p ParameterDecl) MarshalJSON() ([]byte, error) {
	return encodeLossless(parameterWire{
		Name:        p.Name,
		Required:    p.Required,
		Default:     p.Default,
		Description: p.Description,
	}, p.LosslessFields)
}

// BindingEntry is a binding in its serialized form. Entries are kept as raw
// JSON so that fields of kinds this process does not know survive a
// round trip.
type BindingEntry json.RawMessage

// NewBindingEntry serializes b with c, or with the default codec if c is nil.
func NewBindingEntry(c *binding.Codec, b binding.Binding) (BindingEntry, error) {
	var (
		data []byte
		err  error
	)
	if c != nil {
		data, err = c.Marshal(b)
	} else {
		data, err = binding.Marshal(b)
	}
	if err != nil {
		return nil, err
	}
	return BindingEntry(data), nil
}

// Decode decodes the entry with c, or with the default codec if c is nil.
// The result is uninitialized.
func (e BindingEntry) Decode(c *binding.Codec) (binding.Binding, error) {
	if len(e) == 0 {
		return nil, errors.New("manifest: empty binding entry")
	}
	if c != nil {
		return c.Unmarshal(e)
	}
	return binding.Unmarshal(e)
}

func (e BindingEntry) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

func (e *BindingEntry) UnmarshalJSON(b []byte) error {
	if e == nil {
		return errors.New("manifest: UnmarshalJSON on nil BindingEntry")
	}
	*e = append((*e)[0:0], b...)
	return nil
}
