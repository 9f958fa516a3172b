package index

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/bvbever/osm2pgsql/model"
)

// Factory constructs an empty map.
type Factory[K Identifier, V any] func() Map[K, V]

// Registry selects Map implementations by type name.
type Registry[K Identifier, V any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[K, V]
}

// NodeLocations is the registry of node location maps.
//
// Map implementations should typically register themselves from an init() function.
var NodeLocations = NewRegistry[model.NodeID, model.Location]()

// NewRegistry creates an empty registry.
func NewRegistry[K Identifier, V any]() *Registry[K, V] {
	return &Registry[K, V]{
		factories: make(map[string]Factory[K, V]),
	}
}

// Register adds a factory under name. It returns false if the name was
// already taken, in which case the previous factory is replaced.
func (r *Registry[K, V]) Register(name string, f Factory[K, V]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.factories[name]
	r.factories[name] = f
	return !exists
}

// Has reports whether a factory is registered under name.
func (r *Registry[K, V]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered type names in sorted order.
func (r *Registry[K, V]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.factories))
}

// Create builds a new map from a config string of the form "type[,args]".
// Only the type name is interpreted; in-memory maps take no arguments.
func (r *Registry[K, V]) Create(config string) (Map[K, V], error) {
	name, _, _ := strings.Cut(config, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyMapType
	}

	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownMapTypeError{Name: name}
	}
	return f(), nil
}
