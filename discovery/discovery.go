// Package discovery stores binding types and bindings and initializes each
// binding against the type registered under its name.
package discovery

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	binding "github.com/openbindings/binding-go"
)

// Errors for discovery operations.
var (
	ErrTypeNotFound    = errors.New("binding type not found")
	ErrDuplicateType   = errors.New("binding type already registered")
	ErrBindingNotFound = errors.New("binding not found")
)

type entry struct {
	id      uuid.UUID
	binding binding.Binding
}

// Discovery is an in-memory registry of binding types and initialized
// bindings. It is safe for concurrent use; the bindings it returns are
// initialized and must be treated as read-only.
type Discovery struct {
	mu       sync.RWMutex
	types    map[string]*binding.Type
	bindings []entry
	byID     map[uuid.UUID]int

	logger  *zap.Logger
	metrics *metrics
}

// Option configures a Discovery.
type Option func(*config)

type config struct {
	logger     *zap.Logger
	registerer prometheus.Registerer
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRegisterer registers the discovery metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// New creates an empty Discovery.
func New(opts ...Option) (*Discovery, error) {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	m := newMetrics()
	if cfg.registerer != nil {
		if err := m.register(cfg.registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return &Discovery{
		types:   map[string]*binding.Type{},
		byID:    map[uuid.UUID]int{},
		logger:  cfg.logger.Named("discovery"),
		metrics: m,
	}, nil
}

// AddType registers t. A type name can be registered only once.
func (d *Discovery) AddType(t *binding.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil type", binding.ErrInvalidArgument)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.types[t.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateType, t.Name())
	}
	d.types[t.Name()] = t
	d.metrics.types.Set(float64(len(d.types)))
	d.logger.Debug("binding type added",
		zap.String("type", t.Name()),
		zap.String("accepts", string(t.AcceptedCapability())),
		zap.Int("parameters", len(t.Parameters())),
	)
	return nil
}

// RemoveType unregisters the type and removes all bindings of it.
func (d *Discovery) RemoveType(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.types[name]; !ok {
		return fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	delete(d.types, name)
	removed := d.removeWhereLocked(func(e entry) bool { return e.binding.TypeName() == name })
	d.metrics.types.Set(float64(len(d.types)))
	d.logger.Debug("binding type removed", zap.String("type", name), zap.Int("bindings_removed", removed))
	return nil
}

// Type returns the type registered under name.
func (d *Discovery) Type(name string) (*binding.Type, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, name)
	}
	return t, nil
}

// HasType reports whether a type is registered under name.
func (d *Discovery) HasType(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.types[name]
	return ok
}

// Types returns the registered types sorted by name.
func (d *Discovery) Types() []*binding.Type {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*binding.Type, 0, len(d.types))
	for _, t := range d.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// AddBinding initializes b against the type registered under its type name
// and stores it. Initialization errors are returned wrapped; the binding is
// not stored in that case.
func (d *Discovery) AddBinding(b binding.Binding) (uuid.UUID, error) {
	if b == nil {
		return uuid.Nil, fmt.Errorf("%w: nil binding", binding.ErrInvalidArgument)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.types[b.TypeName()]
	if !ok {
		d.metrics.initializations.WithLabelValues(resultFailure).Inc()
		d.logger.Warn("binding rejected", zap.String("type", b.TypeName()), zap.Error(ErrTypeNotFound))
		return uuid.Nil, fmt.Errorf("%w: %q", ErrTypeNotFound, b.TypeName())
	}
	if err := b.Initialize(t); err != nil {
		d.metrics.initializations.WithLabelValues(resultFailure).Inc()
		d.logger.Warn("binding rejected",
			zap.String("type", b.TypeName()),
			zap.String("kind", string(b.Capability())),
			zap.Error(err),
		)
		return uuid.Nil, fmt.Errorf("failed to add binding of type %q: %w", b.TypeName(), err)
	}
	d.metrics.initializations.WithLabelValues(resultSuccess).Inc()

	id := uuid.New()
	d.byID[id] = len(d.bindings)
	d.bindings = append(d.bindings, entry{id: id, binding: b})
	d.metrics.bindings.Set(float64(len(d.bindings)))
	d.logger.Debug("binding added",
		zap.String("id", id.String()),
		zap.String("type", b.TypeName()),
		zap.String("kind", string(b.Capability())),
	)
	return id, nil
}

// Binding returns the binding stored under id.
func (d *Discovery) Binding(id uuid.UUID) (binding.Binding, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	return d.bindings[i].binding, nil
}

// RemoveBinding removes the binding stored under id.
func (d *Discovery) RemoveBinding(id uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, id)
	}
	d.removeWhereLocked(func(e entry) bool { return e.id == id })
	d.logger.Debug("binding removed", zap.String("id", id.String()))
	return nil
}

// RemoveBindings removes all bindings of the named type and returns how many
// were removed.
func (d *Discovery) RemoveBindings(typeName string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeWhereLocked(func(e entry) bool { return e.binding.TypeName() == typeName })
}

func (d *Discovery) removeWhereLocked(match func(entry) bool) int {
	kept := d.bindings[:0]
	removed := 0
	for _, e := range d.bindings {
		if match(e) {
			delete(d.byID, e.id)
			removed++
			continue
		}
		d.byID[e.id] = len(kept)
		kept = append(kept, e)
	}
	// Clear the tail so removed bindings can be collected.
	for i := len(kept); i < len(d.bindings); i++ {
		d.bindings[i] = entry{}
	}
	d.bindings = kept
	d.metrics.bindings.Set(float64(len(d.bindings)))
	return removed
}

// Bindings returns all bindings in insertion order.
func (d *Discovery) Bindings() []binding.Binding {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]binding.Binding, len(d.bindings))
	for i, e := range d.bindings {
		out[i] = e.binding
	}
	return out
}

// IDs returns the identifiers of all bindings in insertion order.
func (d *Discovery) IDs() []uuid.UUID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]uuid.UUID, len(d.bindings))
	for i, e := range d.bindings {
		out[i] = e.id
	}
	return out
}

// Matcher filters bindings in FindBindings.
type Matcher func(binding.Binding) bool

// MatchParameter matches bindings whose value for name, defaults included,
// deep-equals value.
func MatchParameter(name string, value any) Matcher {
	return func(b binding.Binding) bool {
		v, err := b.ParameterValue(name)
		return err == nil && reflect.DeepEqual(v, value)
	}
}

// MatchCapability matches bindings of the given capability.
func MatchCapability(c binding.Capability) Matcher {
	return func(b binding.Binding) bool { return b.Capability() == c }
}

// FindBindings returns the bindings of the named type that satisfy every
// matcher, in insertion order.
func (d *Discovery) FindBindings(typeName string, matchers ...Matcher) []binding.Binding {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []binding.Binding
next:
	for _, e := range d.bindings {
		if e.binding.TypeName() != typeName {
			continue
		}
		for _, m := range matchers {
			if m != nil && !m(e.binding) {
				continue next
			}
		}
		out = append(out, e.binding)
	}
	return out
}

// HasBindings reports whether any binding of the named type is stored.
func (d *Discovery) HasBindings(typeName string) bool {
	return len(d.FindBindings(typeName)) > 0
}

// Import adds types and then bindings. It stops at the first error and
// returns the ids of the bindings added so far.
func (d *Discovery) Import(types []*binding.Type, bindings []binding.Binding) ([]uuid.UUID, error) {
	for _, t := range types {
		if err := d.AddType(t); err != nil {
			return nil, err
		}
	}
	ids := make([]uuid.UUID, 0, len(bindings))
	for i, b := range bindings {
		id, err := d.AddBinding(b)
		if err != nil {
			return ids, fmt.Errorf("binding %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Clear removes all types and bindings.
func (d *Discovery) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.types = map[string]*binding.Type{}
	d.bindings = nil
	d.byID = map[uuid.UUID]int{}
	d.metrics.types.Set(0)
	d.metrics.bindings.Set(0)
	d.logger.Debug("discovery cleared")
}
