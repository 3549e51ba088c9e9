package manifest

import (
	"encoding/json"
	"reflect"
	"strings"
)

// LosslessFields is embedded in every manifest object to keep JSON fields
// the model does not know. Extensions holds keys starting with "x-"; Unknown
// holds all other unrecognised keys. Typed fields win over colliding entries
// when marshaling.
type LosslessFields struct {
	Extensions map[string]json.RawMessage `json:"-"`
	Unknown    map[string]json.RawMessage `json:"-"`
}

// jsonFields returns the JSON member names of the struct type of v, read
// from its json tags. It is evaluated once per wire type at package init.
func jsonFields(v any) map[string]struct{} {
	t := reflect.TypeOf(v)
	out := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		out[name] = struct{}{}
	}
	return out
}

// decodeLossless decodes b into the wire struct W and collects members that
// W does not declare.
func decodeLossless[W any](b []byte, known map[string]struct{}) (W, LosslessFields, error) {
	var w W
	if err := json.Unmarshal(b, &w); err != nil {
		return w, LosslessFields{}, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return w, LosslessFields{}, err
	}

	var lf LosslessFields
	for k, v := range raw {
		if _, ok := known[k]; ok {
			continue
		}
		if strings.HasPrefix(k, "x-") {
			if lf.Extensions == nil {
				lf.Extensions = map[string]json.RawMessage{}
			}
			lf.Extensions[k] = v
			continue
		}
		if lf.Unknown == nil {
			lf.Unknown = map[string]json.RawMessage{}
		}
		lf.Unknown[k] = v
	}
	return w, lf, nil
}

// encodeLossless encodes the wire value w merged with the preserved fields.
func encodeLossless(w any, lf LosslessFields) ([]byte, error) {
	typed, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	if len(lf.Unknown) == 0 && len(lf.Extensions) == 0 {
		return typed, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(typed, &members); err != nil {
		return nil, err
	}
	out := make(map[string]json.RawMessage, len(members)+len(lf.Unknown)+len(lf.Extensions))
	for k, v := range lf.Unknown {
		out[k] = v
	}
	for k, v := range lf.Extensions {
		out[k] = v
	}
	for k, v := range members {
		out[k] = v
	}
	return json.Marshal(out)
}
