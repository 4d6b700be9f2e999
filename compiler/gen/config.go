package gen

import (
	"path"
	"slices"
	"time"
)

// Config holds the invocation parameters of a generator run.
type Config struct {
	// Package is the import path of the default declaration package.
	// Types without a namespace directive are declared there.
	Package string

	// Components is the import path of the package holding component
	// types. It defaults to the sibling "components" package of Package.
	Components string

	// Reflect is the import path of the package receiving the reflection
	// artifact. It defaults to the sibling "reflection" package of Package.
	Reflect string

	// Library is the name schemas are registered under at runtime. It
	// defaults to the module name of the loaded database.
	Library string

	// Input is the document path reported in the file banner. It defaults
	// to the source path of the loaded database.
	Input string

	// Header is an optional comment added below the banner of every file.
	Header string

	// Features lists the enabled feature-flags.
	Features []Feature

	// Now returns the time stamped into file banners.
	Now func() time.Time
}

// FeatureEnabled reports if the given feature name is enabled, either
// explicitly or by default.
func (c *Config) FeatureEnabled(name string) bool {
	if slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name }) {
		return true
	}
	for _, f := range AllFeatures {
		if f.Name == name {
			return f.Default
		}
	}
	return false
}

// validate fills in defaults and checks required settings.
func (c *Config) validate() error {
	if c.Package == "" {
		return NewConfigError("Package", nil, "missing default package")
	}
	if c.Components == "" {
		c.Components = sibling(c.Package, "components")
	}
	if c.Reflect == "" {
		c.Reflect = sibling(c.Package, "reflection")
	}
	if c.Reflect == c.Package || c.Reflect == c.Components {
		return NewConfigError("Reflect", c.Reflect, "reflection package must differ from the declaration packages")
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return nil
}

func sibling(pkg, name string) string {
	if dir := path.Dir(pkg); dir != "." {
		return path.Join(dir, name)
	}
	return name
}
