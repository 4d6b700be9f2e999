package gen

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/typedb"
)

// Declarations returns the declaration artifacts of the exported types,
// one per Go package, in the order the packages are first used. Opaque
// types, types supplied by other packages and unqualified types are not
// declared.
func (g *Generator) Declarations() ([]*Artifact, error) {
	var (
		order  []string
		groups = make(map[string][]*typedb.Type)
		names  = make(map[string]*typedb.Type)
		name   = fileName(g.db.Module(), "")
	)
	for _, t := range g.db.Exports() {
		if t.IsOpaque() || external(t) || unqualified(t) {
			continue
		}
		ns := g.namespace(t)
		qual := ns + "." + goName(t)
		if prev, ok := names[qual]; ok {
			err := &GenerationError{Type: t.Name, Message: fmt.Sprintf("Go type %s is also declared by %s", qual, prev.Name)}
			return nil, withPhase(err, string(ModeDeclaration), name)
		}
		names[qual] = t
		if _, ok := groups[ns]; !ok {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], t)
	}
	artifacts := make([]*Artifact, 0, len(order))
	for _, ns := range order {
		f := g.newFile(ns)
		for _, t := range groups[ns] {
			if err := g.declare(f, t); err != nil {
				return nil, withPhase(err, string(ModeDeclaration), name)
			}
		}
		artifacts = append(artifacts, &Artifact{
			Mode:    ModeDeclaration,
			Package: ns,
			Name:    name,
			file:    f,
		})
	}
	return artifacts, nil
}

func (g *Generator) declare(f *jen.File, t *typedb.Type) error {
	switch t.Kind {
	case typedb.KindEnum:
		g.declareEnum(f, t)
	case typedb.KindStruct:
		g.declareStruct(f, t)
		if err := g.declareConstructor(f, t); err != nil {
			return err
		}
	case typedb.KindAttribute:
		g.declareStruct(f, t)
		g.declareAttribute(f, t)
	case typedb.KindOpaque:
	}
	if t.HasAnnotation(typedb.AnnotationVirtual) {
		g.declarePolymorphic(f, t)
	}
	return nil
}

func (g *Generator) declareEnum(f *jen.File, t *typedb.Type) {
	name := goName(t)
	var under jen.Code = jen.Int32()
	if t.Base != nil {
		under = g.typeRef(t.Base)
	}
	f.Type().Id(name).Add(under)

	members := t.Members()
	if len(members) > 0 {
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, m := range members {
				grp.Id(name + pascal(m.Name)).Id(name).Op("=").Op(strconv.FormatInt(m.Value, 10))
			}
		})
	}
	if !g.cfg.FeatureEnabled(FeatureStringer.Name) {
		return
	}
	f.Commentf("String returns the schema name of the member.")
	f.Func().Params(jen.Id("e").Id(name)).Id("String").Params().String().Block(
		jen.Switch(jen.Id("e")).BlockFunc(func(grp *jen.Group) {
			seen := make(map[int64]bool)
			for _, m := range members {
				// Members sharing a value would be duplicate cases.
				if seen[m.Value] {
					continue
				}
				seen[m.Value] = true
				grp.Case(jen.Id(name + pascal(m.Name))).Block(jen.Return(jen.Lit(m.Name)))
			}
		}),
		jen.Return(jen.Lit(name+"(").Op("+").Qual("strconv", "FormatInt").Call(jen.Int64().Call(jen.Id("e")), jen.Lit(10)).Op("+").Lit(")")),
	)
}

func (g *Generator) declareStruct(f *jen.File, t *typedb.Type) {
	tags := g.cfg.FeatureEnabled(FeatureJSONTags.Name)
	f.Type().Id(goName(t)).StructFunc(func(grp *jen.Group) {
		if t.Base != nil {
			grp.Add(g.typeRef(t.Base))
		}
		for _, fld := range t.Fields {
			st := grp.Id(fieldName(fld)).Add(g.fieldType(fld))
			if tags {
				st.Tag(map[string]string{"json": fld.Name + ",omitempty"})
			}
		}
	})
}

// declareConstructor emits New<T>, returning a value with the schema
// defaults applied. Struct members without a default are built with
// their own constructor, so nested defaults apply as well.
func (g *Generator) declareConstructor(f *jen.File, t *typedb.Type) error {
	name := goName(t)
	values := jen.Dict{}
	if t.Base != nil && !t.Base.IsAttribute() {
		if ctor, ok := g.constructor(t.Base); ok {
			values[jen.Id(goName(t.Base))] = jen.Add(ctor).Call()
		}
	}
	for _, fld := range t.Fields {
		if fld.HasDefault {
			lit, err := g.literal(fld, fld.Default)
			if err != nil {
				return err
			}
			values[jen.Id(fieldName(fld))] = lit
			continue
		}
		if fld.IsArray || fld.Type.IsAttribute() {
			continue
		}
		if ctor, ok := g.constructor(fld.Type); ok {
			values[jen.Id(fieldName(fld))] = jen.Add(ctor).Call()
		}
	}
	f.Commentf("New%s returns a %s with its schema defaults applied.", name, name)
	f.Func().Id("New" + name).Params().Id(name).Block(
		jen.Return(jen.Id(name).Values(values)),
	)
	return nil
}

// declareAttribute emits the positional constructor of an attribute type,
// which takes one argument per field in declaration order, and the marker
// method satisfying reflex.Attribute.
func (g *Generator) declareAttribute(f *jen.File, t *typedb.Type) {
	name := goName(t)
	values := jen.Dict{}
	f.Commentf("New%s returns a %s holding the given field values.", name, name)
	f.Func().Id("New"+name).ParamsFunc(func(grp *jen.Group) {
		for _, fld := range t.Fields {
			grp.Id(param(fld.Name)).Add(g.fieldType(fld))
			values[jen.Id(fieldName(fld))] = jen.Id(param(fld.Name))
		}
	}).Id(name).Block(
		jen.Return(jen.Id(name).Values(values)),
	)
	f.Func().Params(jen.Id(name)).Id("SchemaAttribute").Params().Block()
	f.Var().Id("_").Qual(reflexPkg, "Attribute").Op("=").Id(name).Values()
}

// declarePolymorphic emits the Schema method of types marked virtual and
// of every type deriving from one.
func (g *Generator) declarePolymorphic(f *jen.File, t *typedb.Type) {
	name := goName(t)
	f.Commentf("Schema returns the registered schema of %s.", name)
	f.Func().Params(jen.Id("v").Op("*").Id(name)).Id("Schema").Params().Op("*").Qual(reflexPkg, "Schema").Block(
		jen.Return(jen.Qual(reflexPkg, "Lookup").Call(jen.Qual("reflect", "TypeFor").Index(jen.Id(name)).Call())),
	)
	f.Var().Id("_").Qual(reflexPkg, "Polymorphic").Op("=").Parens(jen.Op("*").Id(name)).Parens(jen.Nil())
}
