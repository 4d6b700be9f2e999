package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Prefix", "example.com/x", "package is outside the output prefix")
		assert.Equal(t, `schemagen: config error for "Prefix" (value: example.com/x): package is outside the output prefix`, err.Error())
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "missing default package")
		assert.Equal(t, `schemagen: config error for "Package": missing default package`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Package", nil, "")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.False(t, errors.Is(err, ErrGenerationFailed))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &GenerationError{
			Phase:   "declaration",
			Type:    "Sprite",
			Field:   "layer",
			File:    "game.go",
			Message: "bad default",
			Cause:   errors.New("boom"),
		}
		assert.Equal(t, "schemagen: generation error in phase declaration on type Sprite field layer (file: game.go): bad default: boom", err.Error())
	})

	t.Run("Error message with phase only", func(t *testing.T) {
		err := NewGenerationError("write", "", "", nil)
		assert.Equal(t, "schemagen: generation error in phase write", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewGenerationError("write", "a.go", "write file", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
	})

	t.Run("withPhase fills context", func(t *testing.T) {
		err := withPhase(&GenerationError{Type: "T", Message: "x"}, "reflection", "m_reflect.go")
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "reflection", genErr.Phase)
		assert.Equal(t, "m_reflect.go", genErr.File)

		err = withPhase(errors.New("plain"), "declaration", "m.go")
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "declaration", genErr.Phase)
		assert.EqualError(t, genErr.Unwrap(), "plain")
	})
}

func TestDriftError(t *testing.T) {
	err := &DriftError{Drifts: []Drift{{Path: "a/m.go"}, {Path: "b/m_reflect.go", Missing: true}}}
	assert.Equal(t, "schemagen: generated files are out of date: a/m.go, b/m_reflect.go", err.Error())
	assert.True(t, errors.Is(fmt.Errorf("check: %w", err), ErrDrift))
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", NewConfigError("Package", nil, ""))
	assert.True(t, IsConfigError(wrapped))
	assert.False(t, IsGenerationError(wrapped))

	wrapped = fmt.Errorf("wrap: %w", NewGenerationError("write", "", "", nil))
	assert.True(t, IsGenerationError(wrapped))
	assert.False(t, IsConfigError(wrapped))
	assert.False(t, IsConfigError(nil))
}
