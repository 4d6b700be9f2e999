package gen

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Path returns the location of the artifact below dir, where dir holds
// the package with import path prefix.
func (a *Artifact) Path(dir, prefix string) (string, error) {
	rel := a.Package
	switch {
	case prefix == "":
	case a.Package == prefix:
		rel = ""
	case strings.HasPrefix(a.Package, prefix+"/"):
		rel = strings.TrimPrefix(a.Package, prefix+"/")
	default:
		return "", NewConfigError("Prefix", prefix, fmt.Sprintf("package %s is outside the output prefix", a.Package))
	}
	return filepath.Join(dir, filepath.FromSlash(rel), a.Name), nil
}

// rendered is an artifact with its formatted content and destination.
type rendered struct {
	path string
	buf  []byte
}

// renderAll formats every artifact before anything touches the disk.
func renderAll(dir, prefix string, artifacts []*Artifact) ([]rendered, error) {
	out := make([]rendered, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := a.Path(dir, prefix)
		if err != nil {
			return nil, err
		}
		buf, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, rendered{path: path, buf: buf})
	}
	return out, nil
}

// Write renders the artifacts and writes them below dir. The package
// with import path prefix maps to dir itself, its sub-packages to the
// matching sub-directories. Nothing is written when any artifact fails
// to render.
func Write(dir, prefix string, artifacts []*Artifact) error {
	files, err := renderAll(dir, prefix, artifacts)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return NewGenerationError("write", f.path, "create directory", err)
		}
		if err := os.WriteFile(f.path, f.buf, 0o644); err != nil {
			return NewGenerationError("write", f.path, "write file", err)
		}
	}
	return nil
}

// Drift describes a generated file that does not match its artifact.
type Drift struct {
	// Path of the file on disk.
	Path string
	// Missing is set when the file does not exist.
	Missing bool
	// Diff lists removed lines prefixed with "-" and added lines
	// prefixed with "+".
	Diff string
}

// Check compares the artifacts with the files below dir, laid out as by
// Write. The banner timestamp is ignored. It returns a *DriftError when
// any file differs.
func Check(dir, prefix string, artifacts []*Artifact) error {
	files, err := renderAll(dir, prefix, artifacts)
	if err != nil {
		return err
	}
	var drifts []Drift
	for _, f := range files {
		current, err := os.ReadFile(f.path)
		if errors.Is(err, os.ErrNotExist) {
			drifts = append(drifts, Drift{Path: f.path, Missing: true})
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", f.path, err)
		}
		old, cur := stripTimestamp(current), stripTimestamp(f.buf)
		if old == cur {
			continue
		}
		drifts = append(drifts, Drift{Path: f.path, Diff: lineDiff(old, cur)})
	}
	if len(drifts) > 0 {
		return &DriftError{Drifts: drifts}
	}
	return nil
}

// stripTimestamp drops the banner line carrying the generation time.
func stripTimestamp(buf []byte) string {
	lines := bytes.Split(buf, []byte("\n"))
	kept := lines[:0]
	for _, l := range lines {
		if bytes.HasPrefix(l, []byte("// - Generated on ")) {
			continue
		}
		kept = append(kept, l)
	}
	return string(bytes.Join(kept, []byte("\n")))
}

func lineDiff(old, cur string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, cur)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
