// File: internal/searchadapters/registry.go
package searchadapters

import (
	"fmt"

	"github.com/kevinhagel/northstar-funding-sub000/internal/taxonomy"
)

// Registry maps an engine identity to its concrete Adapter, matching the
// "values carrying HTTP configuration, selected by engine identity at
// configuration time" shape — no dynamic dispatch via inheritance.
type Registry struct {
	adapters map[taxonomy.SearchEngineType]Adapter
}

// NewRegistry constructs a Registry from a set of adapters, keyed by
// their own EngineType().
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[taxonomy.SearchEngineType]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.EngineType()] = a
	}
	return r
}

// Get returns the adapter registered for engine, or an error if none is
// configured/enabled.
func (r *Registry) Get(engine taxonomy.SearchEngineType) (Adapter, error) {
	a, ok := r.adapters[engine]
	if !ok {
		return nil, fmt.Errorf("searchadapters: no adapter configured for engine %q", engine)
	}
	return a, nil
}

// Engines returns the set of engines currently registered.
func (r *Registry) Engines() []taxonomy.SearchEngineType {
	out := make([]taxonomy.SearchEngineType, 0, len(r.adapters))
	for e := range r.adapters {
		out = append(out, e)
	}
	return out
}
