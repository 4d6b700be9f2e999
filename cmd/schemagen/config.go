package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/syssam/schemagen/compiler/gen"
)

const modeAll = "all"

// settings are the merged invocation parameters. The YAML config file
// uses the flag names as keys.
type settings struct {
	Input      string   `yaml:"input"`
	Mode       string   `yaml:"mode"`
	Outdir     string   `yaml:"outdir"`
	Prefix     string   `yaml:"prefix"`
	Package    string   `yaml:"package"`
	Components string   `yaml:"components"`
	Reflect    string   `yaml:"reflect"`
	Library    string   `yaml:"library"`
	Header     string   `yaml:"header"`
	Features   []string `yaml:"features"`
	Check      bool     `yaml:"check"`
}

// readSettings decodes a config file. Unknown keys are rejected.
func readSettings(path string) (*settings, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	s := &settings{}
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// loadSettings reads the config file, if any, and applies the flags set
// on the command line over it.
func loadSettings(cctx *cli.Context) (*settings, error) {
	s := &settings{}
	if path := cctx.String("config"); path != "" {
		var err error
		if s, err = readSettings(path); err != nil {
			return nil, err
		}
	}
	for name, dst := range map[string]*string{
		"input":      &s.Input,
		"outdir":     &s.Outdir,
		"prefix":     &s.Prefix,
		"package":    &s.Package,
		"components": &s.Components,
		"reflect":    &s.Reflect,
		"library":    &s.Library,
		"header":     &s.Header,
	} {
		if cctx.IsSet(name) {
			*dst = cctx.String(name)
		}
	}
	if cctx.IsSet("mode") || s.Mode == "" {
		s.Mode = cctx.String("mode")
	}
	if cctx.IsSet("feature") {
		s.Features = cctx.StringSlice("feature")
	}
	if cctx.IsSet("check") {
		s.Check = cctx.Bool("check")
	}
	return s, nil
}

// modes returns the artifact modes to generate. All modes yield nil.
func (s *settings) modes() ([]gen.Mode, error) {
	if s.Mode == "" || s.Mode == modeAll {
		return nil, nil
	}
	m, err := gen.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	return []gen.Mode{m}, nil
}

// options converts the settings to generator options.
func (s *settings) options() ([]gen.Option, error) {
	var opts []gen.Option
	if s.Package != "" {
		opts = append(opts, gen.WithPackage(s.Package))
	}
	if s.Components != "" {
		opts = append(opts, gen.WithComponents(s.Components))
	}
	if s.Reflect != "" {
		opts = append(opts, gen.WithReflectPackage(s.Reflect))
	}
	opts = append(opts,
		gen.WithLibrary(s.Library),
		gen.WithInput(s.Input),
		gen.WithHeader(s.Header),
	)
	for _, name := range s.Features {
		f, err := gen.FeatureByName(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithFeatures(f))
	}
	return opts, nil
}
