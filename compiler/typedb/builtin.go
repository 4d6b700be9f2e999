package typedb

import "github.com/syssam/schemagen/compiler/load"

// CoreModule is the module owning the builtin types.
const CoreModule = "$core"

// Directive annotation kinds. They steer the generator and are not
// expanded into annotation metadata.
const (
	// AnnotationGoName overrides the Go name of a type or field: goname{id}.
	AnnotationGoName = "goname"
	// AnnotationGoImport marks a type as supplied by another Go package:
	// goimport{id}, with id spelled "import/path.Ident".
	AnnotationGoImport = "goimport"
	// AnnotationGoNamespace sets the Go package of a type, or of the whole
	// module when attached to the document: gonamespace{ns}.
	AnnotationGoNamespace = "gonamespace"
	// AnnotationComponent places a type in the components package.
	AnnotationComponent = "component"
	// AnnotationVirtual makes a type and its descendants polymorphic.
	AnnotationVirtual = "virtual"
	// AnnotationIgnore suppresses reflection metadata for a type.
	AnnotationIgnore = "ignore"
	// AnnotationAssetRef marks an asset reference type. The type must be
	// supplied by goimport, and its pointer must implement
	// reflex.AssetHolder.
	AnnotationAssetRef = "assetref"
)

// Primitives lists the builtin scalar types.
var Primitives = []string{
	"bool",
	"char",
	"int8",
	"int16",
	"int32",
	"int64",
	"uint8",
	"uint16",
	"uint32",
	"uint64",
	"float",
	"double",
	"string",
	"uuid",
}

// directives lists the directive attribute types and their fields.
var directives = []struct {
	name   string
	fields []string
}{
	{AnnotationGoName, []string{"id"}},
	{AnnotationGoImport, []string{"id"}},
	{AnnotationGoNamespace, []string{"ns"}},
	{AnnotationComponent, nil},
	{AnnotationVirtual, nil},
	{AnnotationIgnore, nil},
	{AnnotationAssetRef, nil},
}

// IsDirective reports if kind is a directive annotation kind.
func IsDirective(kind string) bool {
	for _, d := range directives {
		if d.name == kind {
			return true
		}
	}
	return false
}

// builtinRecords returns the records of the builtin module. They go
// through the same two passes as document records.
func builtinRecords() []*load.TypeRecord {
	records := make([]*load.TypeRecord, 0, len(Primitives)+len(directives))
	for _, name := range Primitives {
		records = append(records, &load.TypeRecord{
			Name:   name,
			Kind:   KindOpaque.String(),
			Module: CoreModule,
		})
	}
	for _, d := range directives {
		r := &load.TypeRecord{
			Name:   d.name,
			Kind:   KindAttribute.String(),
			Module: CoreModule,
			Order:  d.fields,
		}
		for _, f := range d.fields {
			r.Fields = append(r.Fields, &load.FieldRecord{Name: f, Type: load.TypeRef{Name: "string"}})
		}
		records = append(records, r)
	}
	return records
}
