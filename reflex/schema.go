package reflex

import "unsafe"

type (
	// Schema describes one type known to the reflection system.
	Schema struct {
		// Name is the fully qualified name of the type.
		Name string
		// Primitive classifies the runtime representation.
		Primitive Primitive
		// Size of a value in bytes.
		Size uintptr
		// Base points to the schema of the embedded base type, if any.
		Base *Schema
		// Element is the element schema of arrays and pointers, and the
		// underlying representation of enums.
		Element *Schema
		// Operations holds the runtime bindings for arrays and asset references.
		Operations *Operations
		// Fields holds the type's own fields in declaration order.
		Fields []Field
		// EnumValues holds enum members in declaration order.
		EnumValues []EnumValue
		// Annotations attached to the type.
		Annotations []Annotation
	}

	// Field describes one member of an object schema.
	Field struct {
		Name        string
		Schema      *Schema
		Offset      uintptr
		Annotations []Annotation
	}

	// EnumValue is one enum member.
	EnumValue struct {
		Name  string
		Value int64
	}

	// Annotation pairs an attribute value with the schema of its type.
	Annotation struct {
		Schema *Schema
		Attr   Attribute
	}

	// Operations are the function bindings used to manipulate values the
	// reflection system cannot address through field offsets alone.
	Operations struct {
		ArrayGetSize          func(arr unsafe.Pointer) int
		ArrayElementAt        func(arr unsafe.Pointer, index int) unsafe.Pointer
		ArrayMutableElementAt func(arr unsafe.Pointer, index int) unsafe.Pointer
		ArrayMoveTo           func(arr unsafe.Pointer, to, from int)
		ArrayEraseAt          func(arr unsafe.Pointer, index int)
		ArrayResize           func(arr unsafe.Pointer, size int)

		PointerDeref        func(ptr unsafe.Pointer) unsafe.Pointer
		PointerMutableDeref func(ptr unsafe.Pointer) unsafe.Pointer
		PointerAssign       func(ptr, object unsafe.Pointer)
	}
)

// Attribute is implemented by every generated attribute type, which allows
// annotation values of different kinds to be handled uniformly.
type Attribute interface {
	SchemaAttribute()
}

// Polymorphic is implemented by generated types marked virtual, and by
// every type deriving from one. Schema reports the dynamic type's schema.
type Polymorphic interface {
	Schema() *Schema
}

// FieldByName returns the field with the given name, searching the base
// chain after the schema's own fields.
func (s *Schema) FieldByName(name string) (*Field, bool) {
	for cur := s; cur != nil; cur = cur.Base {
		for i := range cur.Fields {
			if cur.Fields[i].Name == name {
				return &cur.Fields[i], true
			}
		}
	}
	return nil, false
}

// AllFields returns the fields of the whole base chain, base fields first.
// The base is always the first member, so inherited offsets hold for s too.
func (s *Schema) AllFields() []Field {
	if s.Base == nil {
		return s.Fields
	}
	inherited := s.Base.AllFields()
	fields := make([]Field, 0, len(inherited)+len(s.Fields))
	fields = append(fields, inherited...)
	return append(fields, s.Fields...)
}

// IsA reports if s is other or derives from it.
func (s *Schema) IsA(other *Schema) bool {
	for cur := s; cur != nil; cur = cur.Base {
		if cur == other {
			return true
		}
	}
	return false
}

// QueryAnnotation returns the first annotation value of type A.
func QueryAnnotation[A Attribute](annotations []Annotation) (A, bool) {
	for _, an := range annotations {
		if a, ok := an.Attr.(A); ok {
			return a, true
		}
	}
	var zero A
	return zero, false
}

// EnumName returns the name of the first member holding value, or the
// empty string.
func EnumName(s *Schema, value int64) string {
	for _, ev := range s.EnumValues {
		if ev.Value == value {
			return ev.Name
		}
	}
	return ""
}

// EnumValueOf returns the value of the named member, or otherwise.
func EnumValueOf(s *Schema, name string, otherwise int64) int64 {
	for _, ev := range s.EnumValues {
		if ev.Name == name {
			return ev.Value
		}
	}
	return otherwise
}

// FieldPointer returns the address of field f inside the object at obj.
func FieldPointer(obj unsafe.Pointer, f *Field) unsafe.Pointer {
	return unsafe.Add(obj, f.Offset)
}
