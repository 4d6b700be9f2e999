package gen

import (
	"errors"
	"strings"
	"time"
)

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the import path of the default declaration package.
// For example: "github.com/org/game/schema".
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Package", nil, "package cannot be empty")
		}
		c.Package = pkg
		return nil
	}
}

// WithComponents sets the import path of the components package.
func WithComponents(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Components", nil, "package cannot be empty")
		}
		c.Components = pkg
		return nil
	}
}

// WithReflectPackage sets the import path of the reflection package.
func WithReflectPackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("Reflect", nil, "package cannot be empty")
		}
		c.Reflect = pkg
		return nil
	}
}

// WithLibrary sets the library name used to register schemas.
func WithLibrary(name string) Option {
	return func(c *Config) error {
		c.Library = name
		return nil
	}
}

// WithInput sets the input path reported in the file banner.
func WithInput(path string) Option {
	return func(c *Config) error {
		c.Input = path
		return nil
	}
}

// WithHeader sets an additional header comment.
// The header is added below the banner of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = strings.TrimSpace(header)
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithClock sets the clock used for the banner timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return NewConfigError("Now", nil, "clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options and fills in the
// derived defaults. Every failing option is reported.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
