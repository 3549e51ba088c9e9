// Package binding implements two-phase bindings: a Binding is a small,
// serializable value holding a type name and parameter values, and a Type is
// the schema that declares which parameters such a binding may or must set.
//
// A binding is created without its Type, typically decoded from a manifest or
// another process, and later initialized against the Type registered under
// its name. Initialization validates the supplied values, fills in defaults
// and rejects mismatches.
//
// # Quick Start
//
//	typ := binding.MustType("acme/translations", binding.CapabilityResource,
//	    binding.MustParameter("locale", binding.Required, nil),
//	    binding.MustParameter("domain", binding.Optional, "messages"),
//	)
//
//	b, err := binding.NewResourceBinding("/app/trans/*.xlf", "acme/translations",
//	    map[string]any{"locale": "en"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := b.Initialize(typ); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(b.ParameterValues()) // map[domain:messages locale:en]
//
// # Errors
//
// Every error matches one of ErrInvalidArgument, ErrNoSuchParameter,
// ErrMissingParameter or ErrNotInitialized with errors.Is. Use errors.As with
// NoSuchParameterError, MissingParameterError, NotAcceptedError or
// TypeMismatchError for details. A failed Initialize leaves the binding
// exactly as it was.
//
// # Serialization
//
// Codec encodes bindings as JSON. Only the kind, the type name, the values
// supplied at construction and kind-specific fields are written; decoded
// bindings are uninitialized and must be initialized again.
//
// # Concurrency
//
// Parameters and Types are immutable and safe for concurrent use. Bindings
// are not: construct and initialize a binding before sharing it with
// concurrent readers. Codec is safe for concurrent use.
//
// # Subpackages
//
//   - typename: syntax of binding type names
//   - manifest: JSON/YAML/TOML documents declaring types and bindings
//   - discovery: in-memory registry that initializes bindings against types
package binding
