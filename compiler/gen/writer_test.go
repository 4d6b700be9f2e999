package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthArtifacts(t *testing.T, opts ...Option) []*Artifact {
	t.Helper()
	db := loadTestdata(t, "health.json")
	opts = append([]Option{WithPackage("example.com/m/schema")}, opts...)
	artifacts, err := newGenerator(t, db, opts...).Generate()
	require.NoError(t, err)
	return artifacts
}

func TestArtifactPath(t *testing.T) {
	a := &Artifact{Package: "example.com/game/schema", Name: "game.go"}
	tests := []struct {
		prefix string
		want   string
	}{
		{"", filepath.Join("out", "example.com", "game", "schema", "game.go")},
		{"example.com/game", filepath.Join("out", "schema", "game.go")},
		{"example.com/game/schema", filepath.Join("out", "game.go")},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := a.Path("out", tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("outside prefix", func(t *testing.T) {
		for _, prefix := range []string{"example.com/other", "example.com/gam"} {
			_, err := a.Path("out", prefix)
			assert.True(t, IsConfigError(err), prefix)
		}
	})
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	artifacts := healthArtifacts(t)
	require.NoError(t, Write(dir, "example.com/m", artifacts))

	for _, want := range []struct {
		path string
		a    *Artifact
	}{
		{filepath.Join(dir, "schema", "m.go"), artifacts[0]},
		{filepath.Join(dir, "reflection", "m_reflect.go"), artifacts[1]},
	} {
		got, err := os.ReadFile(want.path)
		require.NoError(t, err)
		assert.Equal(t, render(t, want.a), string(got))
	}

	t.Run("overwrites", func(t *testing.T) {
		path := filepath.Join(dir, "schema", "m.go")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
		require.NoError(t, Write(dir, "example.com/m", artifacts))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "stale", string(got))
	})

	t.Run("nothing is written on failure", func(t *testing.T) {
		dir := t.TempDir()
		// The reflection package lies outside the prefix.
		err := Write(dir, "example.com/m/schema", artifacts)
		require.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	artifacts := healthArtifacts(t)
	require.NoError(t, Write(dir, "example.com/m", artifacts))

	t.Run("up to date", func(t *testing.T) {
		assert.NoError(t, Check(dir, "example.com/m", artifacts))
	})

	t.Run("timestamp is ignored", func(t *testing.T) {
		later := healthArtifacts(t, WithClock(func() time.Time { return fixedClock().Add(48 * time.Hour) }))
		assert.NoError(t, Check(dir, "example.com/m", later))
	})

	t.Run("drift", func(t *testing.T) {
		changed := healthArtifacts(t, WithHeader("Copyright Example"))
		err := Check(dir, "example.com/m", changed)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDrift)

		var drift *DriftError
		require.ErrorAs(t, err, &drift)
		require.Len(t, drift.Drifts, 2)
		for _, d := range drift.Drifts {
			assert.False(t, d.Missing)
			assert.Equal(t, "+// Copyright Example\n", d.Diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "reflection", "m_reflect.go")
		require.NoError(t, os.Remove(path))

		err := Check(dir, "example.com/m", artifacts)
		var drift *DriftError
		require.ErrorAs(t, err, &drift)
		require.Len(t, drift.Drifts, 1)
		assert.Equal(t, path, drift.Drifts[0].Path)
		assert.True(t, drift.Drifts[0].Missing)
	})
}

func TestStripTimestamp(t *testing.T) {
	src := strings.Join([]string{
		"// --- GENERATED FILE ----",
		"// - Generated on 2024-01-02 03:04:05 UTC",
		"package x",
	}, "\n")
	assert.Equal(t, "// --- GENERATED FILE ----\npackage x", stripTimestamp([]byte(src)))
}

func TestLineDiff(t *testing.T) {
	assert.Equal(t, "-b\n+c\n", lineDiff("a\nb\n", "a\nc\n"))
	assert.Equal(t, "+d\n", lineDiff("a\n", "a\nd\n"))
	assert.Empty(t, lineDiff("same\n", "same\n"))
}
