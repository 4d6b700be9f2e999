package load

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadFile reads and parses the document at path.
func ReadFile(path string) (*Document, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema document: %w", err)
	}
	doc, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Parse decodes a JSON or YAML schema document. Input starting with an
// object or array is read as JSON.
func Parse(buf []byte) (*Document, error) {
	root, err := parseNode(buf)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &SyntaxError{Message: "empty document"}
	}
	top, err := asMapping(root.Content[0], "")
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if doc.Module, err = top.requireString("module"); err != nil {
		return nil, err
	}
	if doc.Imports, err = top.requireStrings("imports"); err != nil {
		return nil, err
	}
	if doc.Exports, err = top.requireStrings("exports"); err != nil {
		return nil, err
	}
	types, err := top.requireMapping("types")
	if err != nil {
		return nil, err
	}
	err = types.each(func(name string, n *yaml.Node) error {
		t, err := parseType(name, n, types.child(name))
		if err != nil {
			return err
		}
		doc.Types = append(doc.Types, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if doc.Annotations, err = parseAnnotations(top.lookup("annotations"), top.child("annotations")); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseNode returns the document node of buf. Flow style YAML that is
// not valid JSON is still accepted, but JSON errors take precedence.
func parseNode(buf []byte) (*yaml.Node, error) {
	var jsonErr error
	if isJSON(buf) {
		root, err := parseJSON(buf)
		if err == nil {
			return root, nil
		}
		jsonErr = err
	}
	root := &yaml.Node{}
	if err := yaml.Unmarshal(buf, root); err != nil {
		if jsonErr != nil {
			return nil, jsonErr
		}
		return nil, &SyntaxError{Message: "invalid input", Cause: err}
	}
	return root, nil
}

func parseType(name string, n *yaml.Node, path string) (*TypeRecord, error) {
	m, err := asMapping(n, path)
	if err != nil {
		return nil, err
	}
	t := &TypeRecord{Name: name, Line: n.Line}
	if t.Kind, err = m.requireString("kind"); err != nil {
		return nil, err
	}
	if t.Module, err = m.requireString("module"); err != nil {
		return nil, err
	}
	if b := m.lookup("base"); b != nil && !isNull(b) {
		if t.Base, err = asString(b, m.child("base")); err != nil {
			return nil, err
		}
	}
	if t.Annotations, err = parseAnnotations(m.lookup("annotations"), m.child("annotations")); err != nil {
		return nil, err
	}
	// Kind specific data is read only for the kinds that carry it. Unknown
	// kinds are rejected later, when the record is instantiated.
	switch t.Kind {
	case "struct", "attribute":
		if t.Order, err = m.requireStrings("order"); err != nil {
			return nil, err
		}
		fields, err := m.requireMapping("fields")
		if err != nil {
			return nil, err
		}
		err = fields.each(func(name string, n *yaml.Node) error {
			f, err := parseField(name, n, fields.child(name))
			if err != nil {
				return err
			}
			t.Fields = append(t.Fields, f)
			return nil
		})
		if err != nil {
			return nil, err
		}
	case "enum":
		if t.Names, err = m.requireStrings("names"); err != nil {
			return nil, err
		}
		t.Values = make(map[string]int64)
		if v := m.lookup("values"); v != nil && !isNull(v) {
			values, err := asMapping(v, m.child("values"))
			if err != nil {
				return nil, err
			}
			err = values.each(func(member string, n *yaml.Node) error {
				i, err := asInt64(n, values.child(member))
				if err != nil {
					return err
				}
				t.Values[member] = i
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func parseField(name string, n *yaml.Node, path string) (*FieldRecord, error) {
	m, err := asMapping(n, path)
	if err != nil {
		return nil, err
	}
	f := &FieldRecord{Name: name, Line: n.Line}
	typ, err := m.require("type")
	if err != nil {
		return nil, err
	}
	switch typ.Kind {
	case yaml.ScalarNode:
		f.Type.Name = typ.Value
	case yaml.MappingNode:
		ref, _ := asMapping(typ, m.child("type"))
		if f.Type.Kind, err = ref.requireString("kind"); err != nil {
			return nil, err
		}
		if f.Type.Name, err = ref.requireString("of"); err != nil {
			return nil, err
		}
	default:
		return nil, &SyntaxError{Path: m.child("type"), Line: typ.Line, Message: "expected a type name or a type object"}
	}
	if d := m.lookup("default"); d != nil {
		if f.Default, err = decodeValue(d, m.child("default")); err != nil {
			return nil, err
		}
		f.HasDefault = true
	}
	if f.Annotations, err = parseAnnotations(m.lookup("annotations"), m.child("annotations")); err != nil {
		return nil, err
	}
	return f, nil
}

// parseAnnotations decodes an annotation mapping. A nil or null node
// yields no annotations. A kind may map to a payload mapping, or to null
// when its attribute type has no fields.
func parseAnnotations(n *yaml.Node, path string) ([]*AnnotationRecord, error) {
	if n == nil || isNull(n) {
		return nil, nil
	}
	m, err := asMapping(n, path)
	if err != nil {
		return nil, err
	}
	var out []*AnnotationRecord
	err = m.each(func(kind string, n *yaml.Node) error {
		an := &AnnotationRecord{Kind: kind, Line: n.Line}
		if !isNull(n) {
			payload, err := asMapping(n, m.child(kind))
			if err != nil {
				return err
			}
			err = payload.each(func(key string, n *yaml.Node) error {
				v, err := decodeValue(n, payload.child(key))
				if err != nil {
					return err
				}
				an.Values = append(an.Values, KeyValue{Key: key, Value: v})
				return nil
			})
			if err != nil {
				return err
			}
		}
		out = append(out, an)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// decodeValue decodes a literal. Scalars become bool, int, int64, uint64,
// float64, string or nil. Sequences and mappings decode to []any and
// map[string]any.
func decodeValue(n *yaml.Node, path string) (any, error) {
	var v any
	if err := resolve(n).Decode(&v); err != nil {
		return nil, &SyntaxError{Path: path, Line: n.Line, Cause: err}
	}
	return v, nil
}

func asInt64(n *yaml.Node, path string) (int64, error) {
	v, err := decodeValue(n, path)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), nil
		}
	}
	return 0, &SyntaxError{Path: path, Line: n.Line, Message: fmt.Sprintf("expected an integer, got %v", v)}
}

// mapping is a mapping node together with its location in the document.
type mapping struct {
	node *yaml.Node
	path string
}

func asMapping(n *yaml.Node, path string) (mapping, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return mapping{}, &SyntaxError{Path: path, Line: n.Line, Message: "expected a mapping"}
	}
	return mapping{node: n, path: path}, nil
}

func (m mapping) child(key string) string {
	if m.path == "" {
		return key
	}
	return m.path + "." + key
}

func (m mapping) lookup(key string) *yaml.Node {
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if m.node.Content[i].Value == key {
			return resolve(m.node.Content[i+1])
		}
	}
	return nil
}

func (m mapping) require(key string) (*yaml.Node, error) {
	n := m.lookup(key)
	if n == nil {
		return nil, &KeyError{Path: m.path, Key: key, Line: m.node.Line}
	}
	return n, nil
}

func (m mapping) requireString(key string) (string, error) {
	n, err := m.require(key)
	if err != nil {
		return "", err
	}
	return asString(n, m.child(key))
}

func (m mapping) requireStrings(key string) ([]string, error) {
	n, err := m.require(key)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.SequenceNode {
		return nil, &SyntaxError{Path: m.child(key), Line: n.Line, Message: "expected a list"}
	}
	out := make([]string, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := asString(item, fmt.Sprintf("%s[%d]", m.child(key), i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (m mapping) requireMapping(key string) (mapping, error) {
	n, err := m.require(key)
	if err != nil {
		return mapping{}, err
	}
	return asMapping(n, m.child(key))
}

// each calls fn for every entry in document order.
func (m mapping) each(fn func(key string, value *yaml.Node) error) error {
	for i := 0; i+1 < len(m.node.Content); i += 2 {
		if err := fn(m.node.Content[i].Value, resolve(m.node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func asString(n *yaml.Node, path string) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", &SyntaxError{Path: path, Line: n.Line, Message: "expected a string"}
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
