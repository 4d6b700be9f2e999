package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	t.Run("pascal", func(t *testing.T) {
		assert.Equal(t, "MaxHealth", pascal("max_health"))
		assert.Equal(t, "Background", pascal("background"))
		assert.Equal(t, "Health", pascal("Health"))
	})

	t.Run("param", func(t *testing.T) {
		assert.Equal(t, "maxHealth", param("max_health"))
		assert.Equal(t, "text", param("text"))
		assert.Equal(t, "func_", param("func"))
		assert.Equal(t, "range_", param("range"))
	})

	t.Run("sanitize", func(t *testing.T) {
		assert.Equal(t, "time_Duration", sanitize("time.Duration"))
		assert.Equal(t, "my_pkg", sanitize("my-pkg"))
	})

	t.Run("pkgName", func(t *testing.T) {
		assert.Equal(t, "schema", pkgName("example.com/game/Schema"))
		assert.Equal(t, "game_core", pkgName("example.com/game-core"))
		assert.Equal(t, "_2d", pkgName("example.com/2d"))
	})

	t.Run("fileName", func(t *testing.T) {
		assert.Equal(t, "game.go", fileName("Game", ""))
		assert.Equal(t, "game_core_reflect.go", fileName("Game.Core", "_reflect"))
	})

	t.Run("splitImport", func(t *testing.T) {
		pkg, name := splitImport("example.com/assets.Texture")
		assert.Equal(t, "example.com/assets", pkg)
		assert.Equal(t, "Texture", name)

		pkg, name = splitImport("Texture")
		assert.Empty(t, pkg)
		assert.Equal(t, "Texture", name)
	})
}
