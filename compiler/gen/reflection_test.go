package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReflectionGame(t *testing.T) {
	db := loadTestdata(t, "game.yaml")
	a, err := newGenerator(t, db).Reflection()
	require.NoError(t, err)
	assert.Equal(t, "example.com/game/reflection", a.Package)
	assert.Equal(t, "game_reflect.go", a.Name)
	src := render(t, a)

	t.Run("schema variables", func(t *testing.T) {
		assertOrder(t, src,
			`\n\tTooltipSchema\s+reflex\.Schema\n`,
			`\n\tLayerSchema\s+reflex\.Schema\n`,
			`\n\tTransformSchema\s+reflex\.Schema\n`,
			`\n\tSpriteSchema\s+reflex\.Schema\n`,
			`\n\tInventorySchema\s+reflex\.Schema\n`,
		)
		assert.NotRegexp(t, `\tVec3Schema\s+reflex\.Schema`, src)
	})

	t.Run("annotation values", func(t *testing.T) {
		assert.Regexp(t, `annotation__Sprite__layer__Tooltip\s+= schema\.NewTooltip\("Render layer", 3\)`, src)
		assert.Regexp(t, `annotation__Inventory__Tooltip\s+= schema\.NewTooltip\("Bag", 9\)`, src)
		assertOrder(t, src,
			`annotations__Sprite__layer\s+= \[\]reflex\.Annotation\{`,
			`Attr:\s+annotation__Sprite__layer__Tooltip,`,
			`Schema:\s+&TooltipSchema,`,
		)
		assertOrder(t, src,
			`annotations__Inventory\s+= \[\]reflex\.Annotation\{`,
			`Attr:\s+annotation__Inventory__Tooltip,`,
		)
	})

	t.Run("directives are not expanded", func(t *testing.T) {
		assert.Regexp(t, `annotations__Transform\s+= \[\]reflex\.Annotation\{\}`, src)
		assert.NotContains(t, src, "__component")
		assert.NotContains(t, src, "__virtual")
		assert.NotContains(t, src, "__gonamespace")
	})

	t.Run("every host has a list", func(t *testing.T) {
		for _, host := range []string{
			"Tooltip", "Tooltip__text", "Tooltip__weight", "Layer",
			"Transform__position", "Transform__scale",
			"Sprite", "Sprite__texture", "Sprite__frames",
			"Inventory__slots", "Inventory__owner",
		} {
			assert.Regexp(t, `annotations__`+host+`\s+= \[\]reflex\.Annotation\{\}`, src, host)
		}
	})

	t.Run("enum", func(t *testing.T) {
		assertOrder(t, src,
			`LayerSchema = reflex\.Schema\{`,
			`Element:\s+reflex\.SchemaOf\[uint8\]\(\),`,
			`EnumValues:\s+\[\]reflex\.EnumValue\{`,
			`Name:\s+"background",\s+Value:\s+int64\(0\)`,
			`Name:\s+"world",\s+Value:\s+int64\(2\)`,
			`Name:\s+"overlay",\s+Value:\s+int64\(5\)`,
			`Name:\s+"debug",\s+Value:\s+int64\(0\)`,
			`Name:\s+"example\.com/game/schema\.Layer",`,
			`Primitive:\s+reflex\.Enum,`,
			`Size:\s+unsafe\.Sizeof\(\*new\(schema\.Layer\)\),`,
		)
	})

	t.Run("inheritance", func(t *testing.T) {
		assertOrder(t, src,
			`SpriteSchema = reflex\.Schema\{`,
			`Base:\s+&TransformSchema,`,
			`Name:\s+"texture",`,
			`Schema:\s+reflex\.SchemaOf\[string\]\(\),`,
			`Name:\s+"layer",`,
			`Schema:\s+&LayerSchema,`,
			`Name:\s+"frames",`,
			`Offset:\s+unsafe\.Offsetof\(schema\.Sprite\{\}\.Frames\),`,
			`Schema:\s+reflex\.SliceOf\[types\.Vec3\]\(&Vec3Schema\),`,
			`Name:\s+"example\.com/game/schema\.Sprite",`,
		)
		assert.Contains(t, src, `reflex.Register("game", reflect.TypeFor[schema.Sprite](), &SpriteSchema)`)
	})

	t.Run("component", func(t *testing.T) {
		assertOrder(t, src,
			`TransformSchema = reflex\.Schema\{`,
			`Name:\s+"position",`,
			`Offset:\s+unsafe\.Offsetof\(components\.Transform\{\}\.Position\),`,
			`Schema:\s+&Vec3Schema,`,
			`Name:\s+"example\.com/game/components\.Transform",`,
		)
		assert.Contains(t, src, `reflex.Register("game", reflect.TypeFor[components.Transform](), &TransformSchema)`)
	})

	t.Run("builtins", func(t *testing.T) {
		assert.Regexp(t, `Schema:\s+reflex\.SliceOf\[int32\]\(reflex\.SchemaOf\[int32\]\(\)\),`, src)
		assert.Regexp(t, `Schema:\s+reflex\.SchemaOf\[uuid\.UUID\]\(\),`, src)
	})
}

func TestReflectionDirectives(t *testing.T) {
	db := parseDB(t, `{
		"module": "m", "imports": [], "exports": ["Note", "Rank", "Texture", "Secret", "Blob", "Holder"],
		"types": {
			"Note": {"kind": "attribute", "module": "m", "order": ["text"], "fields": {"text": {"type": "string"}}},
			"Rank": {"kind": "attribute", "module": "m", "order": ["level"], "fields": {"level": {"type": "int32"}}},
			"Texture": {"kind": "opaque", "module": "m", "annotations": {
				"goimport": {"id": "example.com/assets.Texture"}, "assetref": {}}},
			"Secret": {"kind": "struct", "module": "m", "annotations": {"ignore": {}}, "order": [], "fields": {}},
			"Blob": {"kind": "opaque", "module": "m"},
			"time.Duration": {"kind": "opaque", "module": "m"},
			"Holder": {"kind": "struct", "module": "m", "annotations": {"goname": {"id": "Box"}},
				"order": ["tex", "secret", "timeout", "tags"], "fields": {
					"tex": {"type": "Texture"},
					"secret": {"type": "Secret"},
					"timeout": {"type": "time.Duration"},
					"tags": {"type": {"kind": "array", "of": "string"}, "annotations": {
						"Rank": {"level": 2}, "Note": {"text": "hi"}}}}}
		}
	}`)
	a, err := newGenerator(t, db).Reflection()
	require.NoError(t, err)
	assert.Equal(t, "m_reflect.go", a.Name)
	src := render(t, a)

	t.Run("ignored types have no metadata", func(t *testing.T) {
		assert.NotContains(t, src, "SecretSchema")
		assert.NotContains(t, src, "annotations__Secret ")
		assert.Regexp(t, `Schema:\s+reflex\.SchemaOf\[types\.Secret\]\(\),`, src)
	})

	t.Run("asset reference", func(t *testing.T) {
		assertOrder(t, src,
			`TextureSchema = reflex\.Schema\{`,
			`Name:\s+"example\.com/assets\.Texture",`,
			`Operations:\s+&reflex\.Operations\{`,
			`PointerAssign:\s+reflex\.AssetAssign\[assets\.Texture\],`,
			`PointerDeref:\s+reflex\.AssetDeref\[assets\.Texture\],`,
			`PointerMutableDeref:\s+reflex\.AssetMutableDeref\[assets\.Texture\],`,
			`Primitive:\s+reflex\.AssetRef,`,
			`Size:\s+unsafe\.Sizeof\(\*new\(assets\.Texture\)\),`,
		)
		assert.Contains(t, src, `reflex.Register("m", reflect.TypeFor[assets.Texture](), &TextureSchema)`)
		assert.Contains(t, src, `"example.com/assets"`)
	})

	t.Run("opaque types without a Go type", func(t *testing.T) {
		assertOrder(t, src, `BlobSchema = reflex\.Schema\{`, `Name:\s+"example\.com/game/types\.Blob",`)
		assert.NotContains(t, src, "&BlobSchema)")
		assert.NotContains(t, src, "new(types.Blob)")
	})

	t.Run("renamed host", func(t *testing.T) {
		assert.Regexp(t, `annotations__Box\s+= \[\]reflex\.Annotation\{\}`, src)
		assert.NotContains(t, src, "__goname")
		assert.NotContains(t, src, "Holder")
		assert.Regexp(t, `Name:\s+"example\.com/game/types\.Box",`, src)
	})

	t.Run("field annotations keep order", func(t *testing.T) {
		assertOrder(t, src,
			`annotation__Box__tags__Rank\s+= types\.NewRank\(2\)`,
			`annotation__Box__tags__Note\s+= types\.NewNote\("hi"\)`,
			`annotations__Box__tags\s+= \[\]reflex\.Annotation\{`,
			`Attr:\s+annotation__Box__tags__Rank,\s+Schema:\s+&RankSchema,`,
			`Attr:\s+annotation__Box__tags__Note,\s+Schema:\s+&NoteSchema,`,
		)
	})

	t.Run("field schemas", func(t *testing.T) {
		assert.Regexp(t, `Schema:\s+&TextureSchema,`, src)
		assert.Regexp(t, `Schema:\s+reflex\.SchemaOf\[time\.Duration\]\(\),`, src)
		assert.Regexp(t, `Schema:\s+reflex\.SliceOf\[string\]\(reflex\.SchemaOf\[string\]\(\)\),`, src)
		assert.Contains(t, src, `"time"`)
	})
}

func TestReflectionEmpty(t *testing.T) {
	db := parseDB(t, `{"module": "m", "imports": [], "exports": [], "types": {}}`)
	a, err := newGenerator(t, db).Reflection()
	require.NoError(t, err)
	src := render(t, a)
	assert.Contains(t, src, "package reflection\n")
	assert.NotContains(t, src, "func init()")
}

func TestReflectionErrors(t *testing.T) {
	db := parseDB(t, `{
		"module": "m", "imports": [], "exports": ["T"],
		"types": {
			"Note": {"kind": "attribute", "module": "m", "order": ["text"], "fields": {"text": {"type": "string"}}},
			"T": {"kind": "struct", "module": "m", "order": ["f"], "fields": {
				"f": {"type": "int32", "annotations": {"Note": {"text": null}}}}}
		}
	}`)
	_, err := newGenerator(t, db).Reflection()
	require.Error(t, err)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "reflection", genErr.Phase)
	assert.Equal(t, "m_reflect.go", genErr.File)
	assert.Equal(t, "Note", genErr.Type)
	assert.Equal(t, "text", genErr.Field)
	assert.Contains(t, genErr.Message, "annotation Note on T__f: ")
}

func TestReflectionRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		typ     string
		field   string
		message string
	}{
		{
			name: "asset reference without a Go type",
			input: `{"module": "m", "imports": [], "exports": ["Texture"], "types": {
				"Texture": {"kind": "opaque", "module": "m", "annotations": {"assetref": {}}}}}`,
			typ:     "Texture",
			message: "assetref requires a goimport type",
		},
		{
			name: "imports sharing a name",
			input: `{"module": "m", "imports": [], "exports": ["A", "B"], "types": {
				"A": {"kind": "opaque", "module": "m", "annotations": {"goimport": {"id": "example.com/a.Texture"}}},
				"B": {"kind": "opaque", "module": "m", "annotations": {"goimport": {"id": "example.com/b.Texture"}}}}}`,
			typ:     "B",
			message: "variable TextureSchema of B is also used by A",
		},
		{
			name: "types in different packages sharing a name",
			input: `{"module": "m", "imports": [], "exports": ["Item", "Other"], "types": {
				"Item": {"kind": "struct", "module": "m", "order": [], "fields": {}},
				"Other": {"kind": "struct", "module": "m", "order": [], "fields": {}, "annotations": {
					"goname": {"id": "Item"}, "gonamespace": {"ns": "example.com/other"}}}}}`,
			typ:     "Other",
			message: "variable ItemSchema of Other is also used by Item",
		},
		{
			name: "fields sharing a host name",
			input: `{"module": "m", "imports": [], "exports": ["T"], "types": {
				"T": {"kind": "struct", "module": "m", "order": ["a.b", "a_b"], "fields": {
					"a.b": {"type": "int32"}, "a_b": {"type": "int32"}}}}}`,
			typ:     "T",
			field:   "a_b",
			message: "variable annotations__T__a_b of T.a_b is also used by T.a.b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGenerator(t, parseDB(t, tt.input)).Reflection()
			var genErr *GenerationError
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, "reflection", genErr.Phase)
			assert.Equal(t, "m_reflect.go", genErr.File)
			assert.Equal(t, tt.typ, genErr.Type)
			assert.Equal(t, tt.field, genErr.Field)
			assert.Contains(t, genErr.Message, tt.message)
		})
	}
}
