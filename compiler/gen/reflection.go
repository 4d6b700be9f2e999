package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/typedb"
)

// Reflection returns the reflection artifact: one reflex.Schema variable
// per exported type that is not marked ignore, the annotation values and
// descriptor lists they refer to, and the init functions populating and
// registering them.
func (g *Generator) Reflection() (*Artifact, error) {
	name := fileName(g.db.Module(), "_reflect")
	var types []*typedb.Type
	for _, t := range g.db.Exports() {
		if !t.Annotations.Has(typedb.AnnotationIgnore) {
			types = append(types, t)
		}
	}

	if err := checkReflection(types); err != nil {
		return nil, withPhase(err, string(ModeReflection), name)
	}

	f := g.newFile(g.cfg.Reflect)
	if len(types) > 0 {
		f.Var().DefsFunc(func(grp *jen.Group) {
			for _, t := range types {
				grp.Id(schemaVar(t)).Qual(reflexPkg, "Schema")
			}
		})
	}

	var vars []jen.Code
	for _, t := range types {
		e, err := g.expand(t, nil)
		if err != nil {
			return nil, withPhase(err, string(ModeReflection), name)
		}
		vars = append(vars, e.vars...)
		for _, fld := range t.Fields {
			e, err := g.expand(t, fld)
			if err != nil {
				return nil, withPhase(err, string(ModeReflection), name)
			}
			vars = append(vars, e.vars...)
		}
	}
	if len(vars) > 0 {
		f.Var().Defs(vars...)
	}

	for _, t := range types {
		f.Func().Id("init").Params().BlockFunc(func(grp *jen.Group) {
			grp.Id(schemaVar(t)).Op("=").Qual(reflexPkg, "Schema").Values(g.schemaValues(t))
			if g.hasGoType(t) {
				grp.Qual(reflexPkg, "Register").Call(
					jen.Lit(g.library),
					jen.Qual("reflect", "TypeFor").Index(g.typeRef(t)).Call(),
					jen.Op("&").Id(schemaVar(t)),
				)
			}
		})
	}
	return &Artifact{
		Mode:    ModeReflection,
		Package: g.cfg.Reflect,
		Name:    name,
		file:    f,
	}, nil
}

// checkReflection rejects types whose metadata cannot compile: asset
// references without a Go type providing the reflex.AssetHolder methods,
// and hosts sharing a variable name with another host. Names follow the
// Go identifiers, so types from different packages may collide.
func checkReflection(types []*typedb.Type) error {
	owners := make(map[string]string)
	claim := func(name string, t *typedb.Type, f *typedb.Field) error {
		owner := t.Name
		if f != nil {
			owner += "." + f.Name
		}
		if prev, ok := owners[name]; ok {
			err := &GenerationError{Type: t.Name, Message: fmt.Sprintf("variable %s of %s is also used by %s", name, owner, prev)}
			if f != nil {
				err.Field = f.Name
			}
			return err
		}
		owners[name] = owner
		return nil
	}
	host := func(t *typedb.Type, f *typedb.Field, as typedb.Annotations) error {
		h := hostName(t, f)
		if err := claim("annotations__"+h, t, f); err != nil {
			return err
		}
		for _, an := range as.All() {
			if typedb.IsDirective(an.Kind) {
				continue
			}
			if err := claim("annotation__"+h+"__"+sanitize(an.Kind), t, f); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range types {
		if t.Annotations.Has(typedb.AnnotationAssetRef) && !external(t) {
			return &GenerationError{Type: t.Name, Message: "assetref requires a goimport type whose pointer implements reflex.AssetHolder"}
		}
		if err := claim(schemaVar(t), t, nil); err != nil {
			return err
		}
		if err := host(t, nil, t.Annotations); err != nil {
			return err
		}
		for _, fld := range t.Fields {
			if err := host(t, fld, fld.Annotations); err != nil {
				return err
			}
		}
	}
	return nil
}

// hasGoType reports if a Go type backs t. Opaque types only have one when
// another package supplies it.
func (g *Generator) hasGoType(t *typedb.Type) bool {
	return !t.IsOpaque() || external(t)
}

// schemaValues returns the fields of the reflex.Schema literal of t.
func (g *Generator) schemaValues(t *typedb.Type) jen.Dict {
	d := jen.Dict{
		jen.Id("Name"):        jen.Lit(g.qualifiedName(t)),
		jen.Id("Annotations"): jen.Id("annotations__" + hostName(t, nil)),
	}
	if g.hasGoType(t) {
		d[jen.Id("Size")] = jen.Qual("unsafe", "Sizeof").Call(jen.Op("*").New(g.typeRef(t)))
	}
	switch {
	case t.Annotations.Has(typedb.AnnotationAssetRef):
		d[jen.Id("Primitive")] = jen.Qual(reflexPkg, "AssetRef")
		d[jen.Id("Operations")] = jen.Op("&").Qual(reflexPkg, "Operations").Values(jen.Dict{
			jen.Id("PointerDeref"):        jen.Qual(reflexPkg, "AssetDeref").Index(g.typeRef(t)),
			jen.Id("PointerMutableDeref"): jen.Qual(reflexPkg, "AssetMutableDeref").Index(g.typeRef(t)),
			jen.Id("PointerAssign"):       jen.Qual(reflexPkg, "AssetAssign").Index(g.typeRef(t)),
		})
	case t.IsEnum():
		d[jen.Id("Primitive")] = jen.Qual(reflexPkg, "Enum")
		if t.Base != nil {
			d[jen.Id("Element")] = g.metaRef(t.Base, false)
		} else {
			d[jen.Id("Element")] = jen.Qual(reflexPkg, "SchemaOf").Index(jen.Int32()).Call()
		}
		d[jen.Id("EnumValues")] = jen.Index().Qual(reflexPkg, "EnumValue").ValuesFunc(func(grp *jen.Group) {
			for _, m := range t.Members() {
				grp.Values(jen.Dict{
					jen.Id("Name"):  jen.Lit(m.Name),
					jen.Id("Value"): jen.Lit(m.Value),
				})
			}
		})
	default:
		d[jen.Id("Primitive")] = jen.Qual(reflexPkg, "Object")
		if t.Base != nil {
			d[jen.Id("Base")] = g.metaRef(t.Base, false)
		}
		if len(t.Fields) > 0 {
			d[jen.Id("Fields")] = jen.Index().Qual(reflexPkg, "Field").ValuesFunc(func(grp *jen.Group) {
				for _, fld := range t.Fields {
					grp.Values(jen.Dict{
						jen.Id("Name"):        jen.Lit(fld.Name),
						jen.Id("Schema"):      g.metaRef(fld.Type, fld.IsArray),
						jen.Id("Offset"):      jen.Qual("unsafe", "Offsetof").Call(jen.Add(g.typeRef(t)).Values().Dot(fieldName(fld))),
						jen.Id("Annotations"): jen.Id("annotations__" + hostName(t, fld)),
					})
				}
			})
		}
	}
	return d
}

// metaRef returns an expression of type *reflex.Schema describing t, or
// a slice of t when array is set.
func (g *Generator) metaRef(t *typedb.Type, array bool) jen.Code {
	if array {
		return jen.Qual(reflexPkg, "SliceOf").Index(g.typeRef(t)).Call(g.metaRef(t, false))
	}
	if t.Builtin() || unqualified(t) || t.Annotations.Has(typedb.AnnotationIgnore) {
		return jen.Qual(reflexPkg, "SchemaOf").Index(g.typeRef(t)).Call()
	}
	return jen.Op("&").Id(schemaVar(t))
}
