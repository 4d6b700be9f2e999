// Package reflex is the runtime half of schemagen.
//
// Reflection artifacts produced by compiler/gen import this package and
// describe every schema type as a [Schema] value: its qualified name, base
// schema, field descriptors with byte offsets, enum members and
// annotations. Generated packages register their schemas in init, so
// consumers can look them up by Go type:
//
//	s := reflex.SchemaOf[schema.Health]()
//	for _, f := range s.AllFields() {
//	    ptr := reflex.FieldPointer(unsafe.Pointer(&h), &f)
//	    ...
//	}
//
// Annotation payloads are values of generated attribute types. They all
// satisfy [Attribute], which lets callers walk annotation lists of
// different kinds uniformly and pick a specific kind with
// [QueryAnnotation].
package reflex
