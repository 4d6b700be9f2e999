package gen

import (
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/schemagen/compiler/typedb"
)

// literal converts a default or annotation value for f into Go source.
// Integers are emitted untyped so they assign to any numeric field.
func (g *Generator) literal(f *typedb.Field, v any) (jen.Code, error) {
	if f.IsArray {
		return nil, g.literalError(f, "array fields cannot hold a literal value")
	}
	switch v := v.(type) {
	case bool:
		return jen.Lit(v), nil
	case string:
		if f.Type.IsEnum() {
			if !f.Type.HasMember(v) {
				return nil, g.literalError(f, fmt.Sprintf("%q is not a member of %s", v, f.Type.Name))
			}
			return g.memberRef(f.Type, v), nil
		}
		return jen.Lit(v), nil
	case int:
		return jen.Lit(v), nil
	case int64:
		return jen.Op(strconv.FormatInt(v, 10)), nil
	case uint64:
		return jen.Op(strconv.FormatUint(v, 10)), nil
	case float64:
		return jen.Lit(v), nil
	case nil:
		return nil, g.literalError(f, "null has no literal form")
	default:
		return nil, g.literalError(f, fmt.Sprintf("unsupported literal %v (%T)", v, v))
	}
}

func (g *Generator) literalError(f *typedb.Field, msg string) error {
	return &GenerationError{
		Type:    f.Owner.Name,
		Field:   f.Name,
		Message: msg,
	}
}
