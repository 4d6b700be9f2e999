package typedb

import (
	"fmt"

	"github.com/syssam/schemagen/compiler/load"
)

type state int

const (
	stateEmpty state = iota
	stateLoading
	stateResolving
	stateReady
)

// Database is the resolved type graph of one schema document.
type Database struct {
	module      string
	source      string
	imports     []string
	exports     []*Type
	types       []*Type
	index       map[string]int
	annotations Annotations
	state       state
}

// New returns an empty database.
func New() *Database {
	return &Database{index: make(map[string]int)}
}

// Load creates a database and loads doc into it.
func Load(doc *load.Document) (*Database, error) {
	db := New()
	if err := db.Load(doc); err != nil {
		return nil, err
	}
	return db, nil
}

// Load instantiates every type record of doc and resolves all references.
// It may be called once per database.
func (db *Database) Load(doc *load.Document) error {
	if db.state != stateEmpty {
		return ErrAlreadyLoaded
	}
	db.state = stateLoading
	db.module = doc.Module
	db.source = doc.Source
	db.imports = append([]string(nil), doc.Imports...)
	db.annotations = newAnnotations(doc.Annotations)

	for _, r := range builtinRecords() {
		if _, declared := doc.Type(r.Name); declared {
			continue
		}
		if err := db.instantiate(r); err != nil {
			return err
		}
	}
	for _, r := range doc.Types {
		if err := db.instantiate(r); err != nil {
			return err
		}
	}

	db.state = stateResolving
	for _, t := range db.types {
		if err := t.resolve(db); err != nil {
			return err
		}
	}
	if err := db.annotations.resolve(db, "", ""); err != nil {
		return fmt.Errorf("module %s: %w", db.module, err)
	}
	for _, name := range doc.Exports {
		t, err := db.Lookup(name)
		if err != nil {
			return NewReferenceError(name, "", "", name, RoleExport, err)
		}
		db.exports = append(db.exports, t)
	}
	if err := db.checkCycles(); err != nil {
		return err
	}
	db.state = stateReady
	return nil
}

func (db *Database) instantiate(r *load.TypeRecord) error {
	t, err := newType(r, db.module)
	if err != nil {
		return err
	}
	return db.add(t)
}

// add stores t in the arena. Types can only be added while loading.
func (db *Database) add(t *Type) error {
	if db.state != stateLoading {
		return ErrSealed
	}
	if i, ok := db.index[t.Name]; ok {
		db.types[i] = t
		return nil
	}
	db.index[t.Name] = len(db.types)
	db.types = append(db.types, t)
	return nil
}

// checkCycles walks every base chain and fails on the first type that
// reaches itself.
func (db *Database) checkCycles() error {
	for _, t := range db.types {
		seen := map[*Type]bool{t: true}
		for b := t.Base; b != nil; b = b.Base {
			if seen[b] {
				refErr := NewReferenceError(t.Name, "", "", b.Name, RoleBase, nil)
				refErr.Message = "base chain is cyclic"
				return refErr
			}
			seen[b] = true
		}
	}
	return nil
}

// Module returns the name of the loaded module.
func (db *Database) Module() string { return db.module }

// Source returns the path of the loaded document, if known.
func (db *Database) Source() string { return db.source }

// Imports returns the imported module names in declaration order.
func (db *Database) Imports() []string { return db.imports }

// Exports returns the types exported by the module in declaration order.
func (db *Database) Exports() []*Type { return db.exports }

// Export returns the exported type with the given name.
func (db *Database) Export(name string) (*Type, bool) {
	for _, t := range db.exports {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Types returns every known type: builtins first, then document types in
// declaration order.
func (db *Database) Types() []*Type { return db.types }

// Lookup returns the type with the given name.
func (db *Database) Lookup(name string) (*Type, error) {
	i, ok := db.index[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return db.types[i], nil
}

// Annotations returns the annotations attached to the module itself.
func (db *Database) Annotations() Annotations { return db.annotations }
