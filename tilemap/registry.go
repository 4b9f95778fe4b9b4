package tilemap

import (
	"errors"
	"fmt"

	"github.com/MobRulesGames/isopick/base"
)

var tilemap_registry map[string]*TilemapDef

func init() {
	tilemap_registry = make(map[string]*TilemapDef)
	base.RegisterRegistry("tilemaps", tilemap_registry)
}

// Loads every *.tilemap file under dir. Defs with bad geometry are logged,
// skipped and reported in the returned error.
func LoadAllTilemapsInDir(dir string) error {
	err := base.RegisterAllObjectsInDir("tilemaps", dir, ".tilemap", "yaml")
	for name, def := range tilemap_registry {
		if verr := def.Validate(); verr != nil {
			delete(tilemap_registry, name)
			err = errors.Join(err, verr)
		}
	}
	return err
}

// Reloading replaces every def; tilemaps made earlier keep the def they were
// made from.
func ReloadAllTilemapsInDir(dir string) error {
	if err := base.ClearRegistry("tilemaps"); err != nil {
		return err
	}
	return LoadAllTilemapsInDir(dir)
}

func GetAllTilemapNames() []string {
	return base.GetAllNamesInRegistry("tilemaps")
}

func GetTilemapDef(name string) (*TilemapDef, error) {
	def, ok := tilemap_registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: tilemap %q", base.ErrUnknownDef, name)
	}
	return def, nil
}

// Makes a tilemap from the def registered under name.
func MakeTilemapFromDef(name string, inst TilemapInst) (*Tilemap, error) {
	def, err := GetTilemapDef(name)
	if err != nil {
		return nil, err
	}
	return MakeTilemap(def, inst)
}
