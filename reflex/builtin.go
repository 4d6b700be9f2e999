package reflex

import (
	"reflect"
	"unsafe"

	"github.com/google/uuid"
)

// builtins are the schemas of the Go types backing the $core primitives.
// They are built during variable initialization so generated schema
// literals may reference them from their own initializers.
var builtins = newBuiltins()

func builtin[T any](m map[reflect.Type]*Schema, name string, p Primitive) {
	m[reflect.TypeFor[T]()] = &Schema{
		Name:      name,
		Primitive: p,
		Size:      unsafe.Sizeof(*new(T)),
	}
}

func newBuiltins() map[reflect.Type]*Schema {
	m := make(map[reflect.Type]*Schema)
	builtin[bool](m, "bool", Bool)
	builtin[int8](m, "int8", Int8)
	builtin[int16](m, "int16", Int16)
	builtin[int32](m, "int32", Int32)
	builtin[int64](m, "int64", Int64)
	builtin[uint8](m, "uint8", UInt8)
	builtin[uint16](m, "uint16", UInt16)
	builtin[uint32](m, "uint32", UInt32)
	builtin[uint64](m, "uint64", UInt64)
	builtin[int](m, "int", Int)
	builtin[uint](m, "uint", UInt)
	builtin[float32](m, "float", Float)
	builtin[float64](m, "double", Double)
	builtin[string](m, "string", String)
	builtin[uuid.UUID](m, "uuid", Uuid)
	return m
}

// SchemaOf returns the schema describing T. Builtin types resolve to their
// static schema, any other type to its registry entry. It returns nil for
// types nothing registered.
func SchemaOf[T any]() *Schema {
	t := reflect.TypeFor[T]()
	if s, ok := builtins[t]; ok {
		return s
	}
	return Lookup(t)
}
