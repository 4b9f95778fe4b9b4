package scenetest

import (
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/scene"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/MobRulesGames/isopick/tilemap/tilemaptest"
)

// The camera from the mouse-picking demo.
func DemoCamera() perspective.Camera {
	return perspective.Camera{
		Width:  1280,
		Height: 720,
		Scale:  0.25,
	}
}

// Lists a tilemap in a scene without going through the registry.
func Listing(label string, def *tilemap.TilemapDef, inst tilemap.TilemapInst) *tilemap.Tilemap {
	inst.Label = label
	return &tilemap.Tilemap{
		Defname:     def.Name,
		TilemapDef:  def,
		TilemapInst: inst,
	}
}

// Two centred 8x8 diamond maps: a filled "ground" on layer 0 and an empty
// "overlay" on layer 1. The overlay is listed first.
func GivenATwoLayerDef(name string) *scene.SceneDef {
	def := tilemaptest.GivenADiamondDef()
	return &scene.SceneDef{
		Name:   name,
		Camera: DemoCamera(),
		Tilemaps: []*tilemap.Tilemap{
			Listing("overlay", def, tilemap.TilemapInst{
				Placement: perspective.Identity(),
				Layer:     1,
				Centered:  true,
			}),
			Listing("ground", def, tilemap.TilemapInst{
				Placement: perspective.Identity(),
				Centered:  true,
				Fill:      true,
			}),
		},
	}
}

func GivenAScene(def *scene.SceneDef) *scene.Scene {
	s, err := scene.MakeScene(def)
	if err != nil {
		panic(err)
	}
	return s
}

// Where the centre of cell c of the labelled tilemap shows up on screen.
func ScreenCenterOf(s *scene.Scene, label string, c tilemap.Coord) perspective.ScreenPoint {
	tm, ok := s.Tilemap(label)
	if !ok {
		panic("no tilemap labelled " + label)
	}
	return s.Projection().WorldToScreen(tm.CenterInWorld(c))
}
