package models

import (
	"reflect"
	"sync"

	"github.com/AirbornePM/ormar"
)

// Registry caches loaded schemas per model type. Loading walks the whole
// declaration tree; callers resolving models repeatedly should go
// through a registry instead of Load.
type Registry struct {
	mu      sync.RWMutex
	schemas map[reflect.Type]*Schema
}

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[reflect.Type]*Schema)}
}

// Load returns the cached schema of the model, loading it on first use.
// A failed load is not cached.
func (r *Registry) Load(m ormar.Model) (*Schema, error) {
	t := indirect(reflect.TypeOf(m))
	r.mu.RLock()
	s, ok := r.schemas[t]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	s, err := Load(m)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	// Another goroutine may have loaded the model meanwhile; keep the
	// first cached schema so callers always observe the same pointer.
	if prev, ok := r.schemas[t]; ok {
		s = prev
	} else {
		r.schemas[t] = s
	}
	r.mu.Unlock()
	return s, nil
}

// Purge drops the cached schema of the model.
func (r *Registry) Purge(m ormar.Model) {
	t := indirect(reflect.TypeOf(m))
	r.mu.Lock()
	delete(r.schemas, t)
	r.mu.Unlock()
}

// Len returns the number of cached schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}
