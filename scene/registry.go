package scene

import (
	"fmt"

	"github.com/MobRulesGames/isopick/base"
)

var scene_registry map[string]*SceneDef

func init() {
	scene_registry = make(map[string]*SceneDef)
	base.RegisterRegistry("scenes", scene_registry)
}

// Loads every *.scene file under dir. Tilemap defs must already be loaded so
// that the tilemaps a scene lists can be filled in.
func LoadAllScenesInDir(dir string) error {
	return base.RegisterAllObjectsInDir("scenes", dir, ".scene", "yaml")
}

func ReloadAllScenesInDir(dir string) error {
	if err := base.ClearRegistry("scenes"); err != nil {
		return err
	}
	return LoadAllScenesInDir(dir)
}

func GetAllSceneNames() []string {
	return base.GetAllNamesInRegistry("scenes")
}

func GetSceneDef(name string) (*SceneDef, error) {
	def, ok := scene_registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: scene %q", base.ErrUnknownDef, name)
	}
	return def, nil
}

func MakeSceneFromDef(name string) (*Scene, error) {
	def, err := GetSceneDef(name)
	if err != nil {
		return nil, err
	}
	return MakeScene(def)
}
