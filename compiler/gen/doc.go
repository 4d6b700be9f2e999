// Package gen generates Go source from a resolved schema database.
//
// Two artifact kinds are produced:
//
//   - Declarations: the Go types of the exported schema types. Enums
//     become named integer types with one constant per member, structs
//     become Go structs embedding their base and get a New constructor
//     applying the schema defaults, attributes get a positional
//     constructor and satisfy reflex.Attribute.
//   - Reflection: one reflex.Schema per exported type, with field
//     descriptors, enum members and annotation values, registered with the
//     reflex runtime from init.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	schema document (JSON or YAML)
//	        ↓
//	   load.Parse (ordered records)
//	        ↓
//	   typedb.Load (resolved type graph)
//	        ↓
//	   Generator (jennifer files)
//	        ↓
//	   Artifact.Bytes (goimports formatting)
//
// # Naming
//
// A type is declared under its goname directive, or its Camelized schema
// name. Types carrying goimport are supplied by another package and are
// never declared. The Go package of a type is chosen in order from its
// gonamespace directive, the component marker (Config.Components), the
// module gonamespace directive and Config.Package. Builtin types and
// names containing a dot are referenced as they are.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithPackage("github.com/org/game/schema"),
//	    gen.WithFeatures(gen.FeatureStringer),
//	)
//	g, err := gen.New(db, cfg)
//	artifacts, err := g.Generate()
//	err = gen.Write(".", "github.com/org/game", artifacts)
//
// # Error Handling
//
//   - ConfigError: invalid or missing configuration
//   - GenerationError: a value without a Go literal form, or a render failure
//   - DriftError: files reported by Check
package gen
