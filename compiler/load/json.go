package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

// isJSON reports if buf holds a JSON object or array.
func isJSON(buf []byte) bool {
	buf = bytes.TrimLeft(buf, " \t\r\n")
	return len(buf) > 0 && (buf[0] == '{' || buf[0] == '[')
}

// parseJSON decodes a JSON document into the node tree yaml.v3 produces
// for the same content, so both formats share one walker. yaml.v3 alone
// rejects some valid JSON escapes (\/).
func parseJSON(buf []byte) (*yaml.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	j := &jsonReader{dec: dec, lines: newlines(buf)}
	n, err := j.value()
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{Line: j.line(), Message: "invalid input: data after the document"}
	}
	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Content: []*yaml.Node{n}}, nil
}

type jsonReader struct {
	dec   *json.Decoder
	lines []int
}

// newlines returns the offsets of every line break in buf.
func newlines(buf []byte) []int {
	var out []int
	for i, b := range buf {
		if b == '\n' {
			out = append(out, i)
		}
	}
	return out
}

// line returns the line of the last byte read.
func (j *jsonReader) line() int {
	off := int(j.dec.InputOffset()) - 1
	i, _ := slices.BinarySearch(j.lines, off)
	return i + 1
}

func (j *jsonReader) token() (json.Token, error) {
	tok, err := j.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, &SyntaxError{Line: j.line(), Message: "invalid input", Cause: err}
	}
	return tok, nil
}

func (j *jsonReader) value() (*yaml.Node, error) {
	tok, err := j.token()
	if err != nil {
		return nil, err
	}
	line := j.line()
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}
			for j.dec.More() {
				key, err := j.token()
				if err != nil {
					return nil, err
				}
				k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key.(string), Line: j.line()}
				v, err := j.value()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, k, v)
			}
			_, err := j.token()
			return n, err
		default:
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}
			for j.dec.More() {
				v, err := j.value()
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, v)
			}
			_, err := j.token()
			return n, err
		}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: tok, Line: line}, nil
	case json.Number:
		// Untagged, so yaml.v3 resolves it to int, uint64 or float64.
		return &yaml.Node{Kind: yaml.ScalarNode, Value: tok.String(), Line: line}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(tok), Line: line}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line}, nil
	}
}
