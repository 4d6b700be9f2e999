package gen

import (
	"go/token"
	"path"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/schemagen/compiler/typedb"
)

const (
	reflexPkg = "github.com/syssam/schemagen/reflex"
	uuidPkg   = "github.com/google/uuid"
)

// builtinIdents maps builtin schema types to Go types.
var builtinIdents = map[string]jen.Code{
	"bool":   jen.Bool(),
	"char":   jen.Byte(),
	"int8":   jen.Int8(),
	"int16":  jen.Int16(),
	"int32":  jen.Int32(),
	"int64":  jen.Int64(),
	"uint8":  jen.Uint8(),
	"uint16": jen.Uint16(),
	"uint32": jen.Uint32(),
	"uint64": jen.Uint64(),
	"float":  jen.Float32(),
	"double": jen.Float64(),
	"string": jen.String(),
	"uuid":   jen.Qual(uuidPkg, "UUID"),
}

var lower = cases.Lower(language.Und)

// pascal converts a schema name to an exported Go identifier.
func pascal(s string) string {
	return inflect.Camelize(s)
}

// param converts a schema field name to a Go parameter name.
func param(s string) string {
	p := inflect.CamelizeDownFirst(s)
	if token.IsKeyword(p) || p == "" {
		p += "_"
	}
	return p
}

// sanitize replaces every rune that cannot appear in a Go identifier.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, s)
}

// pkgName returns the package name of the given import path.
func pkgName(pkg string) string {
	name := lower.String(sanitize(path.Base(pkg)))
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name
}

// fileName returns the file name for the module with the given suffix.
func fileName(module, suffix string) string {
	return lower.String(sanitize(module)) + suffix + ".go"
}

// splitImport splits a goimport id into its import path and identifier.
func splitImport(id string) (pkg, name string) {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[:i], id[i+1:]
	}
	return "", id
}

// external reports if t is supplied by another Go package.
func external(t *typedb.Type) bool {
	return t.Annotations.Has(typedb.AnnotationGoImport)
}

// unqualified reports if references to t carry no package.
func unqualified(t *typedb.Type) bool {
	return t.Builtin() || strings.Contains(t.Name, ".")
}

// goName returns the Go identifier of t.
func goName(t *typedb.Type) string {
	if id := t.Annotations.String(typedb.AnnotationGoImport, "id", ""); id != "" {
		_, name := splitImport(id)
		return name
	}
	if id := t.Annotations.String(typedb.AnnotationGoName, "id", ""); id != "" {
		return id
	}
	return pascal(t.Name)
}

// fieldName returns the Go identifier of f.
func fieldName(f *typedb.Field) string {
	return f.Annotations.String(typedb.AnnotationGoName, "id", pascal(f.Name))
}

// namespace returns the import path of the package declaring t.
// Precedence: the type's own namespace directive, the component marker,
// the module's namespace directive, the configured package.
func (g *Generator) namespace(t *typedb.Type) string {
	if ns := t.Annotations.String(typedb.AnnotationGoNamespace, "ns", ""); ns != "" {
		return ns
	}
	if t.Annotations.Has(typedb.AnnotationComponent) {
		return g.cfg.Components
	}
	if t.Exported() && g.moduleNS != "" {
		return g.moduleNS
	}
	return g.cfg.Package
}

// qualifiedName returns the fully qualified name of t as recorded in its
// metadata.
func (g *Generator) qualifiedName(t *typedb.Type) string {
	if id := t.Annotations.String(typedb.AnnotationGoImport, "id", ""); id != "" {
		return id
	}
	if unqualified(t) {
		return t.Name
	}
	return g.namespace(t) + "." + goName(t)
}

// typeRef returns the Go type of t, qualified as needed.
func (g *Generator) typeRef(t *typedb.Type) jen.Code {
	if id := t.Annotations.String(typedb.AnnotationGoImport, "id", ""); id != "" {
		pkg, name := splitImport(id)
		if pkg == "" {
			return jen.Id(name)
		}
		return jen.Qual(pkg, name)
	}
	if t.Builtin() {
		if c, ok := builtinIdents[t.Name]; ok {
			return c
		}
		return jen.Id(t.Name)
	}
	if strings.Contains(t.Name, ".") {
		// Dotted names are emitted verbatim and the formatter adds the import.
		return jen.Id(t.Name)
	}
	return jen.Qual(g.namespace(t), goName(t))
}

// fieldType returns the Go type of f.
func (g *Generator) fieldType(f *typedb.Field) jen.Code {
	if f.IsArray {
		return jen.Index().Add(g.typeRef(f.Type))
	}
	return g.typeRef(f.Type)
}

// constructor returns the constructor of t, if it has one.
func (g *Generator) constructor(t *typedb.Type) (jen.Code, bool) {
	if !t.IsStruct() || external(t) || unqualified(t) {
		return nil, false
	}
	return jen.Qual(g.namespace(t), "New"+goName(t)), true
}

// memberRef returns the constant of the named member of enum t.
func (g *Generator) memberRef(t *typedb.Type, member string) jen.Code {
	name := goName(t) + pascal(member)
	if id := t.Annotations.String(typedb.AnnotationGoImport, "id", ""); id != "" {
		pkg, _ := splitImport(id)
		return jen.Qual(pkg, name)
	}
	return jen.Qual(g.namespace(t), name)
}

// schemaVar returns the name of the metadata variable of t.
func schemaVar(t *typedb.Type) string {
	return sanitize(goName(t)) + "Schema"
}

// hostName returns the identifier part naming an annotation host.
func hostName(t *typedb.Type, f *typedb.Field) string {
	host := sanitize(goName(t))
	if f != nil {
		host += "__" + sanitize(f.Name)
	}
	return host
}
