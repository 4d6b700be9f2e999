package reflex

import (
	"reflect"
	"slices"
	"sync"
)

var registry = struct {
	sync.RWMutex
	types     map[reflect.Type]*Schema
	libraries map[string][]*Schema
}{
	types:     make(map[reflect.Type]*Schema),
	libraries: make(map[string][]*Schema),
}

// Register records s as the schema of t, grouped under library.
// Generated reflection packages call it from init. Registering the same
// type twice replaces the previous schema.
func Register(library string, t reflect.Type, s *Schema) {
	registry.Lock()
	defer registry.Unlock()
	prev, ok := registry.types[t]
	registry.types[t] = s
	if ok {
		if i := slices.Index(registry.libraries[library], prev); i >= 0 {
			registry.libraries[library][i] = s
			return
		}
	}
	registry.libraries[library] = append(registry.libraries[library], s)
}

// Lookup returns the registered schema of t, or nil.
func Lookup(t reflect.Type) *Schema {
	registry.RLock()
	defer registry.RUnlock()
	return registry.types[t]
}

// Library returns the schemas registered under name, in registration order.
func Library(name string) []*Schema {
	registry.RLock()
	defer registry.RUnlock()
	lib := registry.libraries[name]
	out := make([]*Schema, len(lib))
	copy(out, lib)
	return out
}
