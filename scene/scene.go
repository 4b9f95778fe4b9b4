package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/MobRulesGames/GoLLRB/llrb"
	"github.com/MobRulesGames/isopick/logging"
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/pointer"
	"github.com/MobRulesGames/isopick/tilemap"
)

var ErrDuplicateLabel = errors.New("two tilemaps with the same label")

// SceneDef lists the tilemaps that make up a scene and the camera that looks
// at them. Each tilemap names a TilemapDef through its defname.
type SceneDef struct {
	Name string `yaml:"name"`

	// Where the pointer is before it has been seen; nil means
	// pointer.DefaultSentinel.
	Sentinel *perspective.Point `yaml:"sentinel,omitempty"`

	Camera   perspective.Camera `yaml:"camera"`
	Tilemaps []*tilemap.Tilemap `yaml:"tilemaps" registry:"loadfrom-tilemaps"`
}

// Orders tilemaps by layer, breaking ties by the order they were listed in.
type layered struct {
	tm           *tilemap.Tilemap
	layer, order int
}

func layerLess(_a, _b interface{}) bool {
	a := _a.(layered)
	b := _b.(layered)
	if a.layer != b.layer {
		return a.layer < b.layer
	}
	return a.order < b.order
}

// Scene is a set of independent tilemaps, the pointer looking at them and
// the camera that projects the pointer into world space. Tilemaps share
// nothing; the scene only decides the order they are resolved in.
type Scene struct {
	name    string
	tracker *pointer.Tracker
	proj    *perspective.Projection

	layers  *llrb.Tree
	count   int
	byLabel map[string]*tilemap.Tilemap

	nextOccupant tilemap.OccupantID
}

// Hit is what a tilemap found under the pointer.
type Hit struct {
	Tilemap  *tilemap.Tilemap
	Label    string
	Layer    int
	Coord    tilemap.Coord
	Occupant tilemap.OccupantID
	Occupied bool
}

// Makes a scene with fresh tilemaps, so several scenes can be made from one
// def without sharing occupants.
func MakeScene(def *SceneDef) (*Scene, error) {
	proj, err := perspective.MakeProjection(def.Camera)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", def.Name, err)
	}
	sentinel := pointer.DefaultSentinel
	if def.Sentinel != nil {
		sentinel = *def.Sentinel
	}

	s := &Scene{
		name:         def.Name,
		tracker:      pointer.MakeTracker(sentinel),
		proj:         proj,
		layers:       llrb.New(layerLess),
		byLabel:      make(map[string]*tilemap.Tilemap),
		nextOccupant: 1,
	}
	for _, listing := range def.Tilemaps {
		if err := s.add(listing); err != nil {
			return nil, fmt.Errorf("scene %q: %w", def.Name, err)
		}
	}
	logging.Info("made scene", "name", def.Name, "tilemaps", s.count)
	return s, nil
}

func (s *Scene) add(listing *tilemap.Tilemap) error {
	tdef := listing.TilemapDef
	if tdef == nil {
		var err error
		tdef, err = tilemap.GetTilemapDef(listing.Defname)
		if err != nil {
			return err
		}
	}
	tm, err := tilemap.MakeTilemap(tdef, listing.TilemapInst)
	if err != nil {
		return err
	}
	if tm.Label == "" {
		tm.Label = tm.Defname
	}
	if _, ok := s.byLabel[tm.Label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, tm.Label)
	}
	if tm.Fill {
		tm.Occupants().Fill(s.NextOccupant)
	}
	s.byLabel[tm.Label] = tm
	s.layers.ReplaceOrInsert(layered{tm: tm, layer: tm.Layer, order: s.count})
	s.count++
	return nil
}

func (s *Scene) Name() string {
	return s.name
}

func (s *Scene) Tracker() *pointer.Tracker {
	return s.tracker
}

func (s *Scene) Projection() *perspective.Projection {
	return s.proj
}

// Replaces the camera, e.g. when the window is resized. The pointer keeps its
// world position until the next event.
func (s *Scene) SetCamera(cam perspective.Camera) error {
	proj, err := perspective.MakeProjection(cam)
	if err != nil {
		return err
	}
	s.proj = proj
	return nil
}

// Hands out occupant ids in increasing order.
func (s *Scene) NextOccupant() tilemap.OccupantID {
	id := s.nextOccupant
	s.nextOccupant++
	return id
}

// Makes sure NextOccupant never hands out id again.
func (s *Scene) reserve(id tilemap.OccupantID) {
	if id >= s.nextOccupant {
		s.nextOccupant = id + 1
	}
}

// Calls fn on each tilemap in increasing layer order.
func (s *Scene) Each(fn func(tm *tilemap.Tilemap)) {
	var cur interface{} = layered{layer: math.MinInt, order: -1}
	for {
		cur = s.layers.UpperBound(cur)
		if cur == nil {
			return
		}
		fn(cur.(layered).tm)
	}
}

func (s *Scene) Tilemaps() []*tilemap.Tilemap {
	ret := make([]*tilemap.Tilemap, 0, s.count)
	s.Each(func(tm *tilemap.Tilemap) {
		ret = append(ret, tm)
	})
	return ret
}

func (s *Scene) Tilemap(label string) (*tilemap.Tilemap, bool) {
	tm, ok := s.byLabel[label]
	return tm, ok
}

// Looks up what each tilemap has under a world point, in increasing layer
// order. Tilemaps that the point misses are left out.
func (s *Scene) Resolve(p perspective.Point) []Hit {
	var hits []Hit
	s.Each(func(tm *tilemap.Tilemap) {
		c, ok := tm.Pick(p)
		if !ok {
			return
		}
		id, occupied := tm.Get(c)
		hits = append(hits, Hit{
			Tilemap:  tm,
			Label:    tm.Label,
			Layer:    tm.Layer,
			Coord:    c,
			Occupant: id,
			Occupied: occupied,
		})
	})
	return hits
}

// Runs one tick: the pointer takes in this tick's events, then every tilemap
// is resolved against where the pointer ended up.
func (s *Scene) Tick(events []perspective.ScreenPoint) []Hit {
	s.tracker.UpdateAll(events, s.proj)
	return s.Resolve(s.tracker.Current())
}

// Returns the hit on the highest layer.
func Topmost(hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[len(hits)-1], true
}
