package tilemap

import (
	"fmt"

	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/mathgl"
	"gopkg.in/yaml.v3"
)

// TilemapInst is the data that makes one instance of a TilemapDef unique.
type TilemapInst struct {
	// Names this instance within a scene; defaults to the Defname.
	Label string `yaml:"label,omitempty"`

	Placement perspective.Placement `yaml:"placement"`

	// Tilemaps are resolved and drawn in increasing Layer order.
	Layer int `yaml:"layer"`

	// Centered instances have CenterPlacement's translation added to their
	// Placement, so that the middle of the tilemap sits at (X, Y).
	Centered bool `yaml:"centered"`

	// Filled instances start with every cell occupied.
	Fill bool `yaml:"fill"`
}

// Tilemap is one grid placed in world space, together with the occupant of
// each of its cells.
type Tilemap struct {
	Defname     string `yaml:"defname"`
	*TilemapDef `yaml:"-"`
	TilemapInst `yaml:",inline"`

	occupants *Occupants

	// local takes tilemap-local points to world space; ilocal is its inverse.
	local, ilocal mathgl.Mat4
}

// Makes a tilemap with every cell empty. Bad geometry or a placement that
// can't be inverted is an error.
func MakeTilemap(def *TilemapDef, inst TilemapInst) (*Tilemap, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil def", ErrBadGeometry)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	placement := inst.Placement
	if inst.Centered {
		offset := CenterPlacement(def)
		placement.X += offset.X
		placement.Y += offset.Y
	}

	tm := &Tilemap{
		Defname:     def.Name,
		TilemapDef:  def,
		TilemapInst: inst,
		occupants:   MakeOccupants(def.Size),
	}

	var err error
	tm.local, tm.ilocal, err = perspective.MakePlacementMats(placement)
	if err != nil {
		return nil, fmt.Errorf("tilemap %q: %w", def.Name, err)
	}
	return tm, nil
}

// Decodes the Defname and instance fields of a tilemap. An omitted placement
// means the identity rather than a zero scale.
func (tm *Tilemap) UnmarshalYAML(value *yaml.Node) error {
	raw := struct {
		Defname     string `yaml:"defname"`
		TilemapInst `yaml:",inline"`
	}{
		TilemapInst: TilemapInst{Placement: perspective.Identity()},
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	tm.Defname = raw.Defname
	tm.TilemapInst = raw.TilemapInst
	return nil
}

func (tm *Tilemap) Occupants() *Occupants {
	return tm.occupants
}

func (tm *Tilemap) WorldToLocal(p perspective.Point) perspective.Point {
	return perspective.WorldToLocal(&tm.ilocal, p)
}

func (tm *Tilemap) LocalToWorld(p perspective.Point) perspective.Point {
	return perspective.LocalToWorld(&tm.local, p)
}

// Finds the cell under a world point, reporting false if there isn't one.
func (tm *Tilemap) Pick(p perspective.Point) (Coord, bool) {
	return tm.LocalToCellInBounds(tm.WorldToLocal(p))
}

// Finds the occupant of the cell under a world point. Reports false when the
// point misses the tilemap or the cell is empty. Never changes the tilemap.
func (tm *Tilemap) Resolve(p perspective.Point) (OccupantID, bool) {
	c, ok := tm.Pick(p)
	if !ok {
		return 0, false
	}
	return tm.occupants.Get(c)
}

// Where the centre of cell c is drawn in world space.
func (tm *Tilemap) CenterInWorld(c Coord) perspective.Point {
	return tm.LocalToWorld(tm.CellCenter(c))
}

func (tm *Tilemap) CornersInWorld(c Coord) [4]perspective.Point {
	corners := tm.CellCorners(c)
	for i := range corners {
		corners[i] = tm.LocalToWorld(corners[i])
	}
	return corners
}

func (tm *Tilemap) Set(c Coord, id OccupantID) error {
	return tm.occupants.Set(c, id)
}

func (tm *Tilemap) Get(c Coord) (OccupantID, bool) {
	return tm.occupants.Get(c)
}

func (tm *Tilemap) Remove(c Coord) error {
	return tm.occupants.Remove(c)
}
