package tilemaptest

import (
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/tilemap"
)

// The map from the mouse-picking demo: 8x8 diamonds, 16 wide and 8 tall.
func GivenADiamondDef() *tilemap.TilemapDef {
	return &tilemap.TilemapDef{
		Name:     "diamond-8x8",
		Size:     tilemap.Size{X: 8, Y: 8},
		CellSize: tilemap.CellSize{X: 16, Y: 8},
		System:   tilemap.IsometricDiamond,
	}
}

func GivenAnOrthogonalDef() *tilemap.TilemapDef {
	return &tilemap.TilemapDef{
		Name:     "ortho-9x5",
		Size:     tilemap.Size{X: 9, Y: 5},
		CellSize: tilemap.CellSize{X: 80, Y: 100},
		System:   tilemap.Orthogonal,
	}
}

func AtIdentity() tilemap.TilemapInst {
	return tilemap.TilemapInst{Placement: perspective.Identity()}
}

// A placement that exercises every part of the transform.
func AtAnAwkwardPlacement() tilemap.TilemapInst {
	return tilemap.TilemapInst{
		Placement: perspective.Placement{
			X:      -100,
			Y:      37.5,
			Angle:  0.5,
			ScaleX: 2,
			ScaleY: 0.75,
		},
	}
}

func GivenATilemap(def *tilemap.TilemapDef, inst tilemap.TilemapInst) *tilemap.Tilemap {
	tm, err := tilemap.MakeTilemap(def, inst)
	if err != nil {
		panic(err)
	}
	return tm
}

// Every cell holds 1 + its row-major index.
func GivenAFilledTilemap(def *tilemap.TilemapDef, inst tilemap.TilemapInst) *tilemap.Tilemap {
	tm := GivenATilemap(def, inst)
	next := tilemap.OccupantID(0)
	tm.Occupants().Fill(func() tilemap.OccupantID {
		next++
		return next
	})
	return tm
}

// Visits every cell of def in row-major order.
func EachCell(def *tilemap.TilemapDef, fn func(c tilemap.Coord)) {
	for y := 0; y < def.Size.Y; y++ {
		for x := 0; x < def.Size.X; x++ {
			fn(tilemap.Coord{X: x, Y: y})
		}
	}
}
