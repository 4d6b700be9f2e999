// Package typedb holds a resolved schema: the types declared by one
// module, the builtin and imported types it references, and the
// annotations attached to all of them.
//
// A Database is built from a decoded document in two passes. The first
// pass instantiates every type record, recording referenced names only.
// The second pass replaces every name with a direct reference to the
// named type. After Load returns the database is read-only and may be
// shared by any number of readers.
//
//	doc, err := load.ReadFile("game.json")
//	if err != nil {
//	    return err
//	}
//	db, err := typedb.Load(doc)
//	if err != nil {
//	    return err
//	}
//	for _, t := range db.Exports() {
//	    fmt.Println(t.Name, t.Kind)
//	}
//
// # Error Handling
//
// Resolution is fail-fast. The first failure aborts Load and is returned
// as one of:
//
//   - KindError: a type record with an unknown kind
//   - ReferenceError: a base, field type, annotation kind or export that
//     names no type, or a base chain that loops back on itself
//   - AnnotationValueError: an annotation payload without a value for one
//     of its attribute's fields
//
// Each carries the type, field and annotation involved.
package typedb
