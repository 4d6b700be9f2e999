package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/schemagen/compiler/typedb"
)

// Mode selects an artifact kind.
type Mode string

// List of artifact modes.
const (
	ModeDeclaration Mode = "declaration"
	ModeReflection  Mode = "reflection"
)

// Modes lists every artifact mode in generation order.
var Modes = []Mode{ModeDeclaration, ModeReflection}

// ParseMode returns the mode spelled s.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", NewConfigError("Mode", s, "unsupported mode; use declaration or reflection")
}

// Timestamp is the layout of the banner timestamp.
const Timestamp = "2006-01-02 15:04:05"

// Generator emits the artifacts of a resolved database. It never
// modifies the database, and a database may feed any number of
// generators.
type Generator struct {
	db       *typedb.Database
	cfg      *Config
	library  string
	input    string
	moduleNS string
}

// New returns a generator for db. The config must have been created
// with NewConfig, or carry at least a package.
func New(db *typedb.Database, cfg *Config) (*Generator, error) {
	if db == nil {
		return nil, NewConfigError("Database", nil, "database cannot be nil")
	}
	if cfg == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		db:       db,
		cfg:      cfg,
		library:  cfg.Library,
		input:    cfg.Input,
		moduleNS: db.Annotations().String(typedb.AnnotationGoNamespace, "ns", ""),
	}
	if g.library == "" {
		g.library = db.Module()
	}
	if g.input == "" {
		g.input = db.Source()
	}
	return g, nil
}

// Generate returns the artifacts of the given modes, in mode order. With
// no modes every artifact is generated. The first failure aborts the run
// and no artifact is returned.
func (g *Generator) Generate(modes ...Mode) ([]*Artifact, error) {
	if len(modes) == 0 {
		modes = Modes
	}
	var artifacts []*Artifact
	for _, m := range modes {
		switch m {
		case ModeDeclaration:
			decls, err := g.Declarations()
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, decls...)
		case ModeReflection:
			refl, err := g.Reflection()
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, refl)
		default:
			return nil, NewConfigError("Mode", string(m), "unsupported mode")
		}
	}
	return artifacts, nil
}

// newFile creates a jennifer file for pkg carrying the banner.
func (g *Generator) newFile(pkg string) *jen.File {
	f := jen.NewFilePathName(pkg, pkgName(pkg))
	f.HeaderComment("--- GENERATED FILE ----")
	f.HeaderComment("- Do not edit this file")
	f.HeaderComment("- Generated on " + g.cfg.Now().UTC().Format(Timestamp) + " UTC")
	f.HeaderComment("- Generated from " + filepath.Base(g.input))
	if g.cfg.Header != "" {
		for _, line := range strings.Split(g.cfg.Header, "\n") {
			f.HeaderComment(strings.TrimSpace(line))
		}
	}
	f.HeaderComment("Code generated by schemagen. DO NOT EDIT.")
	return f
}

// withPhase records where a generation error was raised.
func withPhase(err error, phase, file string) error {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		if genErr.Phase == "" {
			genErr.Phase = phase
		}
		if genErr.File == "" {
			genErr.File = file
		}
		return err
	}
	return NewGenerationError(phase, file, "", err)
}

// Artifact is one generated Go file.
type Artifact struct {
	// Mode is the artifact kind.
	Mode Mode
	// Package is the import path of the file's package.
	Package string
	// Name is the file name.
	Name string

	file *jen.File
}

// Bytes renders and formats the artifact.
func (a *Artifact) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := a.file.Render(&buf); err != nil {
		return nil, NewGenerationError(string(a.Mode), a.Name, "render", err)
	}
	// Format using goimports (adds the imports of dotted type names).
	out, err := imports.Process(a.Name, buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError(string(a.Mode), a.Name, "format", err)
	}
	return out, nil
}

// Render writes the formatted artifact to w.
func (a *Artifact) Render(w io.Writer) error {
	out, err := a.Bytes()
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write %s: %w", a.Name, err)
	}
	return nil
}
