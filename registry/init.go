package registry

import (
	"errors"
	"path/filepath"

	"github.com/MobRulesGames/isopick/base"
	"github.com/MobRulesGames/isopick/scene"
	"github.com/MobRulesGames/isopick/tilemap"
)

// The directories under datadir that definitions are loaded from, in the
// order they have to be loaded.
func DefinitionDirs(datadir string) []string {
	return []string{
		filepath.Join(datadir, "tilemaps"),
		filepath.Join(datadir, "scenes"),
	}
}

// Loads every definition under datadir. Scenes refer to tilemaps so tilemaps
// go first. Files that fail to load are skipped and reported together.
func LoadAllRegistries(datadir string) error {
	dirs := DefinitionDirs(datadir)
	tilemapErr := tilemap.LoadAllTilemapsInDir(dirs[0])
	sceneErr := scene.LoadAllScenesInDir(dirs[1])
	return errors.Join(tilemapErr, sceneErr)
}

// Drops every loaded definition and loads them again. Scenes and tilemaps
// made before the reload are unaffected.
func ReloadAllRegistries(datadir string) error {
	if err := base.ClearRegistry("scenes"); err != nil {
		return err
	}
	if err := base.ClearRegistry("tilemaps"); err != nil {
		return err
	}
	return LoadAllRegistries(datadir)
}
