package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messyScene = `name:    messy
camera:
      width: 10
      height: 10
      scale: 1
# the only tilemap
tilemaps:
      - defname: demo-diamond
        placement: {x: 1,   y: 2}
`

func givenAFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestFormatYaml(t *testing.T) {
	formatted, err := formatYaml([]byte(messyScene))
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "name: messy\n")
	assert.Contains(t, string(formatted), "  width: 10\n")
	assert.Contains(t, string(formatted), "# the only tilemap\n")
	assert.Contains(t, string(formatted), "placement: {x: 1, y: 2}")

	again, err := formatYaml(formatted)
	require.NoError(t, err)
	assert.Equal(t, string(formatted), string(again), "formatting is idempotent")

	_, err = formatYaml([]byte("name: [unclosed\n"))
	assert.Error(t, err)
}

func TestYamlFmter(t *testing.T) {
	t.Run("check leaves files alone", func(t *testing.T) {
		path := givenAFile(t, "messy.scene", messyScene)
		changed, err := yamlfmt(true)(path)
		require.NoError(t, err)
		assert.True(t, changed)

		contents, _ := os.ReadFile(path)
		assert.Equal(t, messyScene, string(contents))
		assert.False(t, processFile(path, true))
	})

	t.Run("rewrites files", func(t *testing.T) {
		path := givenAFile(t, "messy.scene", messyScene)
		assert.True(t, processFile(path, false))

		changed, err := yamlfmt(true)(path)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("ignores logs", func(t *testing.T) {
		path := givenAFile(t, "isopick.log", "not: [yaml")
		assert.True(t, processFile(path, true))
	})

	t.Run("unknown extensions are a mistake", func(t *testing.T) {
		assert.Panics(t, func() {
			processFile(givenAFile(t, "notes.txt", ""), true)
		})
	})
}
