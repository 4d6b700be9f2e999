package typedb

import (
	"slices"

	"github.com/syssam/schemagen/compiler/load"
)

// Type is one schema type. Kind selects which of the variant data is set:
// struct and attribute types own Fields, enum types own Names.
type Type struct {
	Name        string
	Module      string
	Kind        Kind
	Base        *Type
	Annotations Annotations
	Fields      []*Field
	Names       []string

	values    map[string]int64
	baseName  string
	unordered []*Field
	exported  bool
}

// Field is a member of a struct or attribute type.
type Field struct {
	Owner       *Type
	Name        string
	Type        *Type
	IsArray     bool
	Default     any
	HasDefault  bool
	Annotations Annotations

	ref load.TypeRef
}

// EnumMember is an enum member with its value.
type EnumMember struct {
	Name  string
	Value int64
}

// Exported reports if the type belongs to the loaded module.
func (t *Type) Exported() bool { return t.exported }

// Builtin reports if the type belongs to the builtin module.
func (t *Type) Builtin() bool { return t.Module == CoreModule }

// IsStruct reports if the type has a field list, which is true for
// struct and attribute types.
func (t *Type) IsStruct() bool { return t.Kind == KindStruct || t.Kind == KindAttribute }

// IsAttribute reports if the type can be used as an annotation kind.
func (t *Type) IsAttribute() bool { return t.Kind == KindAttribute }

// IsEnum reports if the type is an enum.
func (t *Type) IsEnum() bool { return t.Kind == KindEnum }

// IsOpaque reports if the type is opaque.
func (t *Type) IsOpaque() bool { return t.Kind == KindOpaque }

// FieldByName returns the type's own field with the given name.
func (t *Type) FieldByName(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// EnumValue returns the value of the named member. Members without an
// explicit value are zero.
func (t *Type) EnumValue(name string) int64 {
	return t.values[name]
}

// HasEnumValue reports if the named member carries an explicit value.
func (t *Type) HasEnumValue(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Members returns the enum members in declaration order.
func (t *Type) Members() []EnumMember {
	members := make([]EnumMember, 0, len(t.Names))
	for _, name := range t.Names {
		members = append(members, EnumMember{Name: name, Value: t.values[name]})
	}
	return members
}

// HasMember reports if the enum declares the named member.
func (t *Type) HasMember(name string) bool {
	for _, n := range t.Names {
		if n == name {
			return true
		}
	}
	return false
}

// BaseChain returns the bases of t, nearest first.
func (t *Type) BaseChain() []*Type {
	var chain []*Type
	for b := t.Base; b != nil; b = b.Base {
		chain = append(chain, b)
	}
	return chain
}

// HasAnnotation reports if t or any of its bases carries the annotation.
func (t *Type) HasAnnotation(kind string) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Annotations.Has(kind) {
			return true
		}
	}
	return false
}

// newType instantiates a record. Only names are recorded at this point.
func newType(r *load.TypeRecord, module string) (*Type, error) {
	kind, ok := ParseKind(r.Kind)
	if !ok {
		return nil, NewKindError(r.Name, "", r.Kind)
	}
	t := &Type{
		Name:        r.Name,
		Module:      r.Module,
		Kind:        kind,
		Annotations: newAnnotations(r.Annotations),
		baseName:    r.Base,
		exported:    r.Module == module,
	}
	switch kind {
	case KindStruct, KindAttribute:
		ordered := make(map[string]bool, len(r.Order))
		for _, name := range r.Order {
			fr, ok := r.Field(name)
			if !ok {
				return nil, NewReferenceError(r.Name, name, "", name, RoleField, nil)
			}
			f, err := newField(t, fr)
			if err != nil {
				return nil, err
			}
			ordered[name] = true
			t.Fields = append(t.Fields, f)
		}
		// Records missing from the order list are not members, but their
		// references must still resolve.
		for _, fr := range r.Fields {
			if ordered[fr.Name] {
				continue
			}
			f, err := newField(t, fr)
			if err != nil {
				return nil, err
			}
			t.unordered = append(t.unordered, f)
		}
	case KindEnum:
		t.Names = append([]string(nil), r.Names...)
		t.values = make(map[string]int64, len(r.Values))
		for name, v := range r.Values {
			t.values[name] = v
		}
	case KindOpaque:
	}
	return t, nil
}

func newField(owner *Type, fr *load.FieldRecord) (*Field, error) {
	f := &Field{
		Owner:       owner,
		Name:        fr.Name,
		Default:     fr.Default,
		HasDefault:  fr.HasDefault,
		Annotations: newAnnotations(fr.Annotations),
		ref:         fr.Type,
	}
	switch fr.Type.Kind {
	case "":
	case "array":
		f.IsArray = true
	default:
		return nil, NewKindError(owner.Name, fr.Name, fr.Type.Kind)
	}
	return f, nil
}

// resolve replaces the names recorded by newType with direct references.
func (t *Type) resolve(db *Database) error {
	if t.baseName != "" {
		base, err := db.Lookup(t.baseName)
		if err != nil {
			return NewReferenceError(t.Name, "", "", t.baseName, RoleBase, err)
		}
		t.Base = base
	}
	if err := t.Annotations.resolve(db, t.Name, ""); err != nil {
		return err
	}
	for _, f := range slices.Concat(t.Fields, t.unordered) {
		typ, err := db.Lookup(f.ref.Name)
		if err != nil {
			return NewReferenceError(t.Name, f.Name, "", f.ref.Name, RoleFieldType, err)
		}
		f.Type = typ
		if err := f.Annotations.resolve(db, t.Name, f.Name); err != nil {
			return err
		}
	}
	return nil
}
