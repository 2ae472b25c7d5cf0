package rack

import (
	"errors"
	"fmt"
	"sort"
)

// Node is the per-block processing contract. Process reads the input
// buses, fills the output bus and reports whether the node wants to
// keep running — these nodes have no natural termination, so it always
// returns true. A missing input bus is treated as silence and a
// missing right channel duplicates the left one.
type Node interface {
	Process(inputs []Bus, output Bus, params Params) bool
}

// Factory builds one Node instance for a node type.
type Factory func(ctx Context) (Node, error)

type registryEntry struct {
	factory Factory
	specs   []ParamSpec
}

// Registry maps node type names to their factories and parameter
// descriptors.
type Registry struct {
	entries map[string]registryEntry
}

var errDuplicateNode = errors.New("duplicate node type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Register adds a factory and its parameter descriptors for nodeType.
func (r *Registry) Register(nodeType string, factory Factory, specs ...ParamSpec) error {
	if nodeType == "" {
		return errors.New("empty node type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.entries[nodeType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateNode, nodeType)
	}

	r.entries[nodeType] = registryEntry{factory: factory, specs: specs}

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(nodeType string, factory Factory, specs ...ParamSpec) {
	if err := r.Register(nodeType, factory, specs...); err != nil {
		panic("rack registry: " + err.Error())
	}
}

// Lookup returns the factory for nodeType, or nil.
func (r *Registry) Lookup(nodeType string) Factory {
	return r.entries[nodeType].factory
}

// Specs returns a copy of the parameter descriptors for nodeType.
func (r *Registry) Specs(nodeType string) []ParamSpec {
	specs := r.entries[nodeType].specs
	if specs == nil {
		return nil
	}

	out := make([]ParamSpec, len(specs))
	copy(out, specs)

	return out
}

// Names returns the registered node types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
