package typedb

import "github.com/syssam/schemagen/compiler/load"

// Annotation attaches an attribute value to a type, a field or the module.
type Annotation struct {
	// Kind is the name of the attribute type.
	Kind string
	// Type is the resolved attribute type.
	Type *Type

	values []any
	raw    *load.AnnotationRecord
}

// Values returns the payload values in the field order of the attribute type.
func (a *Annotation) Values() []any { return a.values }

// Value returns the payload value stored under the attribute field name.
func (a *Annotation) Value(name string) (any, bool) {
	if a.raw == nil {
		return nil, false
	}
	return a.raw.Value(name)
}

// resolve binds the annotation to its attribute type and orders the payload.
func (a *Annotation) resolve(db *Database, host, field string) error {
	t, err := db.Lookup(a.Kind)
	if err != nil {
		return NewReferenceError(host, field, a.Kind, a.Kind, RoleAnnotation, err)
	}
	if !t.IsAttribute() {
		refErr := NewReferenceError(host, field, a.Kind, a.Kind, RoleAnnotation, nil)
		refErr.Message = "annotation kind is a " + t.Kind.String() + ", not an attribute"
		return refErr
	}
	a.Type = t
	a.values = make([]any, 0, len(t.Fields))
	for _, f := range t.Fields {
		v, ok := a.Value(f.Name)
		if !ok {
			return NewAnnotationValueError(host, field, a.Kind, f.Name)
		}
		a.values = append(a.values, v)
	}
	return nil
}

// Annotations is an ordered set of annotations, at most one per kind.
type Annotations struct {
	list []*Annotation
}

func newAnnotations(records []*load.AnnotationRecord) Annotations {
	var as Annotations
	for _, r := range records {
		an := &Annotation{Kind: r.Kind, raw: r}
		if i := as.index(r.Kind); i >= 0 {
			as.list[i] = an
			continue
		}
		as.list = append(as.list, an)
	}
	return as
}

func (as Annotations) index(kind string) int {
	for i, an := range as.list {
		if an.Kind == kind {
			return i
		}
	}
	return -1
}

// Has reports if an annotation of the given kind is present.
func (as Annotations) Has(kind string) bool { return as.index(kind) >= 0 }

// Get returns the annotation of the given kind.
func (as Annotations) Get(kind string) (*Annotation, bool) {
	if i := as.index(kind); i >= 0 {
		return as.list[i], true
	}
	return nil, false
}

// All returns the annotations in declaration order.
func (as Annotations) All() []*Annotation { return as.list }

// Len returns the number of annotations.
func (as Annotations) Len() int { return len(as.list) }

// String returns the string value of field in the annotation of the given
// kind, or otherwise when the annotation or a string value is absent.
func (as Annotations) String(kind, field, otherwise string) string {
	an, ok := as.Get(kind)
	if !ok {
		return otherwise
	}
	v, _ := an.Value(field)
	if s, ok := v.(string); ok {
		return s
	}
	return otherwise
}

func (as Annotations) resolve(db *Database, host, field string) error {
	for _, an := range as.list {
		if err := an.resolve(db, host, field); err != nil {
			return err
		}
	}
	return nil
}
