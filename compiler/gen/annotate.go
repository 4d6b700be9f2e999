package gen

import (
	"errors"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/typedb"
)

// expansion is the annotation metadata of one host entity.
type expansion struct {
	// list is the name of the descriptor list variable.
	list string
	// vars are the specs of the annotation values followed by the list.
	vars []jen.Code
}

// expand builds the annotation values and the descriptor list of a type
// (f == nil) or one of its fields. Directive annotations are skipped. The
// list is emitted even when empty, since metadata always refers to it.
func (g *Generator) expand(t *typedb.Type, f *typedb.Field) (*expansion, error) {
	as := t.Annotations
	if f != nil {
		as = f.Annotations
	}
	host := hostName(t, f)
	e := &expansion{list: "annotations__" + host}
	var items []jen.Code
	for _, an := range as.All() {
		if typedb.IsDirective(an.Kind) {
			continue
		}
		value, err := g.attributeValue(an)
		if err != nil {
			var genErr *GenerationError
			if errors.As(err, &genErr) {
				genErr.Message = "annotation " + an.Kind + " on " + host + ": " + genErr.Message
			}
			return nil, err
		}
		name := "annotation__" + host + "__" + sanitize(an.Kind)
		e.vars = append(e.vars, jen.Id(name).Op("=").Add(value))
		items = append(items, jen.Values(jen.Dict{
			jen.Id("Schema"): g.metaRef(an.Type, false),
			jen.Id("Attr"):   jen.Id(name),
		}))
	}
	e.vars = append(e.vars,
		jen.Id(e.list).Op("=").Index().Qual(reflexPkg, "Annotation").Values(items...),
	)
	return e, nil
}

// attributeValue returns the construction of an annotation value: a call
// of the attribute constructor, or a positional composite literal for
// attribute types supplied by other packages.
func (g *Generator) attributeValue(an *typedb.Annotation) (jen.Code, error) {
	attr := an.Type
	args := make([]jen.Code, 0, len(attr.Fields))
	for i, v := range an.Values() {
		lit, err := g.literal(attr.Fields[i], v)
		if err != nil {
			return nil, err
		}
		args = append(args, lit)
	}
	if ctor, ok := g.constructor(attr); ok {
		return jen.Add(ctor).Call(args...), nil
	}
	return jen.Add(g.typeRef(attr)).Values(args...), nil
}
