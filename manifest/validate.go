package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	binding "github.com/openbindings/binding-go"
	"github.com/openbindings/binding-go/typename"
)

type validateOptions struct {
	rejectUnknownFields     bool
	requireSupportedVersion bool
	codec                   *binding.Codec
}

// ValidateOption configures Manifest.Validate.
type ValidateOption func(*validateOptions)

// WithRejectUnknownFields treats unknown (non-`x-`) fields as errors.
// By default unknown fields are preserved and ignored.
func WithRejectUnknownFields() ValidateOption {
	return func(o *validateOptions) { o.rejectUnknownFields = true }
}

// WithRequireSupportedVersion requires the manifest version to be within SupportedRange.
func WithRequireSupportedVersion() ValidateOption {
	return func(o *validateOptions) { o.requireSupportedVersion = true }
}

// WithCodec decodes binding entries with c instead of the default codec.
func WithCodec(c *binding.Codec) ValidateOption {
	return func(o *validateOptions) { o.codec = c }
}

// Validate checks the manifest and reports every problem it finds.
//
// Beyond the document shape, each binding is decoded and initialized
// against a copy of its declared type, so unknown, missing and mismatched
// parameters are reported here rather than at registration.
func (m Manifest) Validate(opts ...ValidateOption) error {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var errs []string

	if strings.TrimSpace(m.Manifest) == "" {
		errs = append(errs, "manifest: required")
	} else if ok, err := IsSupportedVersion(m.Manifest); err != nil {
		errs = append(errs, fmt.Sprintf("manifest: %v", err))
	} else if !ok && o.requireSupportedVersion {
		errs = append(errs, fmt.Sprintf("manifest: unsupported version %q (supported %s-%s)", m.Manifest, MinSupportedVersion, MaxTestedVersion))
	}

	types := map[string]*binding.Type{}
	for _, name := range sortedKeys(m.Types) {
		decl := m.Types[name]
		prefix := fmt.Sprintf("types[%q]", name)
		ok := true

		if err := typename.Validate(name); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			ok = false
		}
		if strings.TrimSpace(decl.Accepts) == "" {
			errs = append(errs, prefix+".accepts: required")
			ok = false
		}

		seen := map[string]int{}
		for idx, p := range decl.Parameters {
			pp := fmt.Sprintf("%s.parameters[%d]", prefix, idx)
			if !binding.IsValidParameterName(p.Name) {
				errs = append(errs, fmt.Sprintf("%s.name: must contain letters and digits only and start with a letter (got %q)", pp, p.Name))
				ok = false
			} else if first, dup := seen[p.Name]; dup {
				errs = append(errs, fmt.Sprintf("%s.name: %q duplicates parameters[%d]", pp, p.Name, first))
				ok = false
			} else {
				seen[p.Name] = idx
			}
			if p.Required && p.Default != nil {
				errs = append(errs, pp+": required parameters must not have a default")
				ok = false
			}
			if o.rejectUnknownFields {
				appendUnknownFieldProblems(&errs, pp, p.Unknown)
			}
		}
		if o.rejectUnknownFields {
			appendUnknownFieldProblems(&errs, prefix, decl.Unknown)
		}

		if ok {
			t, err := decl.build(name)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
				continue
			}
			types[name] = t
		}
	}

	for idx, e := range m.Bindings {
		prefix := fmt.Sprintf("bindings[%d]", idx)
		b, err := e.Decode(o.codec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
			continue
		}
		if o.rejectUnknownFields {
			appendUnknownBindingFields(&errs, prefix, e, o.codec)
		}
		if _, declared := m.Types[b.TypeName()]; !declared {
			errs = append(errs, fmt.Sprintf("%s.type: references unknown type %q", prefix, b.TypeName()))
			continue
		}
		t, ok := types[b.TypeName()]
		if !ok {
			// The type itself is invalid and already reported.
			continue
		}
		if err := b.Initialize(t); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", prefix, err))
		}
	}

	if o.rejectUnknownFields {
		appendUnknownFieldProblems(&errs, "", m.Unknown)
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs}
}

// appendUnknownBindingFields reports members of a binding entry that are
// lost when the entry is decoded and encoded again.
func appendUnknownBindingFields(errs *[]string, prefix string, e BindingEntry, c *binding.Codec) {
	b, err := e.Decode(c)
	if err != nil {
		return
	}
	var canonical []byte
	if c != nil {
		canonical, err = c.Marshal(b)
	} else {
		canonical, err = binding.Marshal(b)
	}
	if err != nil {
		return
	}
	var in, out map[string]json.RawMessage
	if json.Unmarshal(e, &in) != nil || json.Unmarshal(canonical, &out) != nil {
		return
	}
	unknown := map[string]json.RawMessage{}
	for k, v := range in {
		// An empty parameters object is dropped by the codec.
		if _, ok := out[k]; ok || k == "parameters" || strings.HasPrefix(k, "x-") {
			continue
		}
		unknown[k] = v
	}
	appendUnknownFieldProblems(errs, prefix, unknown)
}

func appendUnknownFieldProblems(errs *[]string, prefix string, unknown map[string]json.RawMessage) {
	if len(unknown) == 0 {
		return
	}
	keys := sortedKeys(unknown)
	if prefix == "" {
		*errs = append(*errs, fmt.Sprintf("unknown fields: %s", strings.Join(keys, ", ")))
		return
	}
	*errs = append(*errs, fmt.Sprintf("%s: unknown fields: %s", prefix, strings.Join(keys, ", ")))
}

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid manifest"
	}
	return "invalid manifest: " + strings.Join(e.Problems, "; ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
