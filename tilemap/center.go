package tilemap

import "github.com/MobRulesGames/isopick/perspective"

// Returns the translation that puts the midpoint between the centres of the
// first and last cells of def at the origin.
func CenterPlacement(def *TilemapDef) perspective.Placement {
	low := def.CellCenter(Coord{X: 0, Y: 0})
	high := def.CellCenter(Coord{X: def.Size.X - 1, Y: def.Size.Y - 1})
	mid := low.Add(high).Scale(0.5)
	return perspective.Translated(-mid.X, -mid.Y)
}
