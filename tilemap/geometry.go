package tilemap

import (
	"errors"
	"fmt"
	"math"

	"github.com/MobRulesGames/isopick/perspective"
	"gopkg.in/yaml.v3"
)

var ErrBadGeometry = errors.New("bad tilemap geometry")
var ErrUnsupportedSystem = errors.New("unsupported coordinate system")

type CoordSystem int

const (
	Orthogonal CoordSystem = iota
	IsometricDiamond
	IsometricStaggered
)

var coordSystemNames = map[CoordSystem]string{
	Orthogonal:         "orthogonal",
	IsometricDiamond:   "isometric-diamond",
	IsometricStaggered: "isometric-staggered",
}

func (cs CoordSystem) String() string {
	if name, ok := coordSystemNames[cs]; ok {
		return name
	}
	return fmt.Sprintf("CoordSystem(%d)", int(cs))
}

func ParseCoordSystem(name string) (CoordSystem, error) {
	for cs, csName := range coordSystemNames {
		if csName == name {
			return cs, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedSystem, name)
}

func (cs CoordSystem) MarshalYAML() (interface{}, error) {
	return cs.String(), nil
}

func (cs *CoordSystem) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseCoordSystem(name)
	if err != nil {
		return err
	}
	*cs = parsed
	return nil
}

// CellSize is the extent of one cell in tilemap-local units. For
// IsometricDiamond it is the width and height of a cell's rhombus.
type CellSize struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// TilemapDef is the geometry shared by every instance of a tilemap.
type TilemapDef struct {
	Name     string      `yaml:"name"`
	Size     Size        `yaml:"size"`
	CellSize CellSize    `yaml:"cellsize"`
	System   CoordSystem `yaml:"system"`
}

func (def *TilemapDef) Validate() error {
	if def.Size.X <= 0 || def.Size.Y <= 0 {
		return fmt.Errorf("%w: tilemap %q has size %dx%d", ErrBadGeometry, def.Name, def.Size.X, def.Size.Y)
	}
	cw, ch := float64(def.CellSize.X), float64(def.CellSize.Y)
	if !(cw > 0) || !(ch > 0) || math.IsInf(cw, 0) || math.IsInf(ch, 0) {
		return fmt.Errorf("%w: tilemap %q has cell size %vx%v", ErrBadGeometry, def.Name, cw, ch)
	}
	switch def.System {
	case Orthogonal, IsometricDiamond:
	default:
		return fmt.Errorf("%w: tilemap %q uses %v", ErrUnsupportedSystem, def.Name, def.System)
	}
	return nil
}

// Converts a tilemap-local point to the cell containing it. The result may
// lie outside of the tilemap. A point on the edge between two cells belongs to
// the cell with the higher index.
//
// Orthogonal cells are anchored at their bottom-left corner: cell (x, y)
// covers [x*w, (x+1)*w) x [y*h, (y+1)*h).
//
// IsometricDiamond cells are rhombuses centred on ((x+y)*w/2, (y-x)*h/2), so
// cell (0, 0) is centred on the origin, +x runs towards the lower right and +y
// towards the upper right.
func (def *TilemapDef) LocalToCell(local perspective.Point) Coord {
	fx, fy := def.cellOf(local)
	return Coord{X: int(fx), Y: int(fy)}
}

// Floored cell indices, kept as floats so that callers can range check them
// before converting; far away or NaN points must not wrap into the tilemap.
func (def *TilemapDef) cellOf(local perspective.Point) (float64, float64) {
	w, h := float64(def.CellSize.X), float64(def.CellSize.Y)
	lx, ly := float64(local.X), float64(local.Y)
	switch def.System {
	case IsometricDiamond:
		// a = x + y and b = y - x in cell units
		a := 2 * lx / w
		b := 2 * ly / h
		return math.Floor((a-b)/2 + 0.5), math.Floor((a+b)/2 + 0.5)
	default:
		return math.Floor(lx / w), math.Floor(ly / h)
	}
}

// Like LocalToCell but reports false for points outside of the tilemap.
func (def *TilemapDef) LocalToCellInBounds(local perspective.Point) (Coord, bool) {
	fx, fy := def.cellOf(local)
	if !(fx >= 0 && fy >= 0 && fx < float64(def.Size.X) && fy < float64(def.Size.Y)) {
		return Coord{}, false
	}
	return Coord{X: int(fx), Y: int(fy)}, true
}

// Centre of a cell in tilemap-local space; LocalToCell(CellCenter(c)) == c.
func (def *TilemapDef) CellCenter(c Coord) perspective.Point {
	w, h := def.CellSize.X, def.CellSize.Y
	x, y := float32(c.X), float32(c.Y)
	switch def.System {
	case IsometricDiamond:
		return perspective.Point{
			X: (x + y) * w / 2,
			Y: (y - x) * h / 2,
		}
	default:
		return perspective.Point{
			X: (x + 0.5) * w,
			Y: (y + 0.5) * h,
		}
	}
}

// Outline of a cell in tilemap-local space, counter-clockwise. Diamonds start
// at their left tip, rectangles at their bottom-left corner.
func (def *TilemapDef) CellCorners(c Coord) [4]perspective.Point {
	center := def.CellCenter(c)
	hw, hh := def.CellSize.X/2, def.CellSize.Y/2
	switch def.System {
	case IsometricDiamond:
		return [4]perspective.Point{
			center.Add(perspective.Point{X: -hw}),
			center.Add(perspective.Point{Y: -hh}),
			center.Add(perspective.Point{X: hw}),
			center.Add(perspective.Point{Y: hh}),
		}
	default:
		return [4]perspective.Point{
			center.Add(perspective.Point{X: -hw, Y: -hh}),
			center.Add(perspective.Point{X: hw, Y: -hh}),
			center.Add(perspective.Point{X: hw, Y: hh}),
			center.Add(perspective.Point{X: -hw, Y: hh}),
		}
	}
}
