package binding

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Decoder decodes the JSON form of one binding kind.
type Decoder func(data []byte) (Binding, error)

// Codec serializes bindings to JSON and decodes them back, dispatching on
// the "kind" field. Decoded bindings are always uninitialized; callers
// re-run Initialize to regain validated access.
type Codec struct {
	mu       sync.RWMutex
	decoders map[Capability]Decoder
}

// NewCodec returns a codec that knows the built-in kinds.
func NewCodec() *Codec {
	c := &Codec{decoders: map[Capability]Decoder{}}
	c.decoders[CapabilityResource] = decodeInto[ResourceBinding]
	c.decoders[CapabilityClass] = decodeInto[ClassBinding]
	return c
}

// decodeInto decodes data into a new T. T's pointer type must implement
// Binding and json.Unmarshaler.
func decodeInto[T any, PT interface {
	*T
	Binding
}](data []byte) (Binding, error) {
	v := PT(new(T))
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Register adds a decoder for kind. Registering a kind twice is an error.
func (c *Codec) Register(kind Capability, dec Decoder) error {
	if kind == "" || dec == nil {
		return invalidArgument("codec: kind and decoder are required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.decoders[kind]; ok {
		return invalidArgument("codec: kind %q already registered", kind)
	}
	c.decoders[kind] = dec
	return nil
}

// Knows reports whether a decoder for kind is registered.
func (c *Codec) Knows(kind Capability) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.decoders[kind]
	return ok
}

// Marshal encodes b. Only the type name, the values supplied at construction
// and kind-specific fields are written.
func (c *Codec) Marshal(b Binding) ([]byte, error) {
	if isNil(b) {
		return nil, invalidArgument("codec: nil binding")
	}
	return json.Marshal(b)
}

// Unmarshal decodes a binding written by Marshal. Kinds without a registered
// decoder decode as *Base so that no parameter data is lost.
func (c *Codec) Unmarshal(data []byte) (Binding, error) {
	var head struct {
		Kind Capability `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	if head.Kind == "" {
		return nil, invalidArgument("codec: missing binding kind")
	}

	c.mu.RLock()
	dec, ok := c.decoders[head.Kind]
	c.mu.RUnlock()
	if !ok {
		dec = decodeInto[Base]
	}
	b, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("codec: decode %q binding: %w", head.Kind, err)
	}
	return b, nil
}

var defaultCodec = NewCodec()

// Marshal encodes b with the default codec.
func Marshal(b Binding) ([]byte, error) { return defaultCodec.Marshal(b) }

// Unmarshal decodes a binding with the default codec.
func Unmarshal(data []byte) (Binding, error) { return defaultCodec.Unmarshal(data) }

// RegisterKind adds a decoder to the default codec.
func RegisterKind(kind Capability, dec Decoder) error { return defaultCodec.Register(kind, dec) }
