// Package load decodes schema documents into an ordered record tree.
//
// A document is JSON or YAML. Every mapping keeps the order it was written
// in, which is why decoding goes through yaml.v3 nodes rather than into Go
// maps directly.
package load

// Document is a decoded schema document.
type Document struct {
	// Source is the path the document was read from, if any.
	Source      string
	Module      string
	Imports     []string
	Exports     []string
	Types       []*TypeRecord
	Annotations []*AnnotationRecord
}

// TypeRecord is one entry of the document's type table.
type TypeRecord struct {
	Name        string
	Kind        string
	Module      string
	Base        string // empty when absent or null
	Annotations []*AnnotationRecord
	Line        int

	// Struct and attribute data.
	Order  []string
	Fields []*FieldRecord

	// Enum data. Members missing from Values are left out of the map.
	Names  []string
	Values map[string]int64
}

// Field returns the field record with the given name.
func (t *TypeRecord) Field(name string) (*FieldRecord, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Type returns the record of the named type.
func (d *Document) Type(name string) (*TypeRecord, bool) {
	for _, t := range d.Types {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// FieldRecord is one member of a struct or attribute record.
type FieldRecord struct {
	Name        string
	Type        TypeRef
	Default     any
	HasDefault  bool
	Annotations []*AnnotationRecord
	Line        int
}

// TypeRef is a field type: a plain type name, or a composite such as
// {kind: array, of: Vec3}. Kind is empty for plain names.
type TypeRef struct {
	Kind string
	Name string
}

// IsArray reports if the reference is an array of Name.
func (r TypeRef) IsArray() bool { return r.Kind == "array" }

func (r TypeRef) String() string {
	if r.Kind == "" {
		return r.Name
	}
	return r.Kind + "<" + r.Name + ">"
}

// AnnotationRecord is one annotation attached to a document, type or
// field. Values keep the order of its payload mapping.
type AnnotationRecord struct {
	Kind   string
	Values []KeyValue
	Line   int
}

// Value returns the payload value stored under key.
func (a *AnnotationRecord) Value(key string) (any, bool) {
	for _, kv := range a.Values {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// KeyValue is one payload entry of an annotation.
type KeyValue struct {
	Key   string
	Value any
}
