// Command schemagen compiles a resolved schema document into Go
// declaration and reflection packages.
//
//	schemagen -i game.json -o ./internal --prefix github.com/org/game/internal \
//	    --package github.com/org/game/internal/schema
//
// Without --outdir the artifacts are printed to stdout.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/syssam/schemagen/compiler/gen"
	"github.com/syssam/schemagen/compiler/load"
	"github.com/syssam/schemagen/compiler/typedb"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "schemagen",
		Usage:     "generate Go declarations and reflection metadata from a schema document",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "path of the schema document (JSON or YAML)",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "artifacts to generate: declaration, reflection or all",
				Value:   modeAll,
			},
			&cli.StringFlag{
				Name:    "outdir",
				Aliases: []string{"o"},
				Usage:   "directory holding the --prefix package; stdout when empty",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "import path of the package located at --outdir",
			},
			&cli.StringFlag{
				Name:  "package",
				Usage: "import path of the default declaration package",
			},
			&cli.StringFlag{
				Name:  "components",
				Usage: "import path of the components package",
			},
			&cli.StringFlag{
				Name:  "reflect",
				Usage: "import path of the reflection package",
			},
			&cli.StringFlag{
				Name:  "library",
				Usage: "library name schemas are registered under",
			},
			&cli.StringFlag{
				Name:  "header",
				Usage: "comment added below the banner of every file",
			},
			&cli.StringSliceFlag{
				Name:  "feature",
				Usage: "enable a codegen feature (repeatable)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML file providing defaults for the flags",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "report generated files that are out of date instead of writing",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output",
			},
		},
		Action: run,
	}
}

func run(cctx *cli.Context) error {
	level := slog.LevelInfo
	if cctx.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	settings, err := loadSettings(cctx)
	if err != nil {
		return err
	}
	if settings.Input == "" {
		return errors.New("missing --input")
	}
	modes, err := settings.modes()
	if err != nil {
		return err
	}
	opts, err := settings.options()
	if err != nil {
		return err
	}

	doc, err := load.ReadFile(settings.Input)
	if err != nil {
		return err
	}
	db, err := typedb.Load(doc)
	if err != nil {
		return err
	}
	logger.Debug("loaded document", "module", db.Module(), "types", len(db.Types()), "exports", len(db.Exports()))

	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	g, err := gen.New(db, cfg)
	if err != nil {
		return err
	}
	artifacts, err := g.Generate(modes...)
	if err != nil {
		return err
	}

	switch {
	case settings.Check:
		if settings.Outdir == "" {
			return errors.New("--check requires --outdir")
		}
		return check(logger, settings, artifacts)
	case settings.Outdir == "":
		return printArtifacts(cctx.App.Writer, artifacts)
	}
	if err := gen.Write(settings.Outdir, settings.Prefix, artifacts); err != nil {
		return err
	}
	for _, a := range artifacts {
		path, _ := a.Path(settings.Outdir, settings.Prefix)
		logger.Info("generated", "mode", a.Mode, "package", a.Package, "path", path)
	}
	return nil
}

// printArtifacts writes every artifact to w, once all of them have rendered.
func printArtifacts(w io.Writer, artifacts []*gen.Artifact) error {
	var buf bytes.Buffer
	for _, a := range artifacts {
		if err := a.Render(&buf); err != nil {
			return err
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func check(logger *slog.Logger, s *settings, artifacts []*gen.Artifact) error {
	err := gen.Check(s.Outdir, s.Prefix, artifacts)
	var drift *gen.DriftError
	if !errors.As(err, &drift) {
		return err
	}
	for _, d := range drift.Drifts {
		if d.Missing {
			logger.Warn("missing generated file", "path", d.Path)
			continue
		}
		logger.Warn("generated file is out of date", "path", d.Path)
		logger.Debug("diff", "path", d.Path, "diff", d.Diff)
	}
	return err
}
