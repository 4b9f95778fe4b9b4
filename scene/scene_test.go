package scene_test

import (
	"errors"
	"testing"

	"github.com/MobRulesGames/isopick/base"
	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/pointer"
	"github.com/MobRulesGames/isopick/scene"
	"github.com/MobRulesGames/isopick/scene/scenetest"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/MobRulesGames/isopick/tilemap/tilemaptest"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(tms []*tilemap.Tilemap) []string {
	var ret []string
	for _, tm := range tms {
		ret = append(ret, tm.Label)
	}
	return ret
}

func SceneSpec() {
	s := scenetest.GivenAScene(scenetest.GivenATwoLayerDef("two-layer"))
	target := tilemap.Coord{X: 3, Y: 4}

	Convey("orders tilemaps by layer", func() {
		So(labels(s.Tilemaps()), ShouldResemble, []string{"ground", "overlay"})
	})

	Convey("fills with increasing ids", func() {
		ground, ok := s.Tilemap("ground")
		So(ok, ShouldBeTrue)
		id, ok := ground.Get(tilemap.Coord{})
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, 1)
		So(ground.Occupants().Count(), ShouldEqual, 64)
		So(s.NextOccupant(), ShouldEqual, 65)
	})

	Convey("sees nothing before the pointer has moved", func() {
		So(s.Tick(nil), ShouldBeEmpty)
		So(s.Tracker().Current(), ShouldResemble, pointer.DefaultSentinel)
	})

	Convey("resolves every layer under the pointer", func() {
		hits := s.Tick([]perspective.ScreenPoint{scenetest.ScreenCenterOf(s, "ground", target)})
		So(hits, ShouldHaveLength, 2)

		So(hits[0].Label, ShouldEqual, "ground")
		So(hits[0].Coord, ShouldResemble, target)
		So(hits[0].Occupied, ShouldBeTrue)
		So(hits[0].Occupant, ShouldEqual, 1+4*8+3)

		So(hits[1].Label, ShouldEqual, "overlay")
		So(hits[1].Layer, ShouldEqual, 1)
		So(hits[1].Coord, ShouldResemble, target)
		So(hits[1].Occupied, ShouldBeFalse)

		top, ok := scene.Topmost(hits)
		So(ok, ShouldBeTrue)
		So(top.Label, ShouldEqual, "overlay")

		Convey("and writes show up on the next tick", func() {
			So(top.Tilemap.Set(top.Coord, 7), ShouldBeNil)
			hits := s.Tick(nil)
			So(hits[1].Occupied, ShouldBeTrue)
			So(hits[1].Occupant, ShouldEqual, 7)
		})

		Convey("and keeps the last position when events leave the viewport", func() {
			hits := s.Tick([]perspective.ScreenPoint{{X: -5, Y: 10}, {X: 1280, Y: 0}})
			So(hits, ShouldHaveLength, 2)
			So(hits[0].Coord, ShouldResemble, target)
		})
	})

	Convey("keeps the last event of a tick", func() {
		first := scenetest.ScreenCenterOf(s, "ground", tilemap.Coord{X: 0, Y: 0})
		last := scenetest.ScreenCenterOf(s, "ground", tilemap.Coord{X: 7, Y: 2})
		hits := s.Tick([]perspective.ScreenPoint{first, last})
		So(hits[0].Coord, ShouldResemble, tilemap.Coord{X: 7, Y: 2})
	})

	Convey("misses the map from the corner of the screen", func() {
		So(s.Tick([]perspective.ScreenPoint{{X: 0, Y: 0}}), ShouldBeEmpty)
		_, ok := scene.Topmost(nil)
		So(ok, ShouldBeFalse)
	})
}

func TestScene(t *testing.T) {
	Convey("a two layer scene", t, SceneSpec)
}

func TestScenesDontShareTilemaps(t *testing.T) {
	def := scenetest.GivenATwoLayerDef("shared")
	a := scenetest.GivenAScene(def)
	b := scenetest.GivenAScene(def)

	ta, _ := a.Tilemap("overlay")
	tb, _ := b.Tilemap("overlay")
	require.NoError(t, ta.Set(tilemap.Coord{X: 1, Y: 1}, 99))
	_, ok := tb.Get(tilemap.Coord{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Nil(t, def.Tilemaps[0].Occupants())
}

func TestSameLayerKeepsListingOrder(t *testing.T) {
	def := tilemaptest.GivenAnOrthogonalDef()
	s := scenetest.GivenAScene(&scene.SceneDef{
		Name:   "flat",
		Camera: scenetest.DemoCamera(),
		Tilemaps: []*tilemap.Tilemap{
			scenetest.Listing("c", def, tilemap.TilemapInst{Placement: perspective.Identity(), Layer: 5}),
			scenetest.Listing("a", def, tilemap.TilemapInst{Placement: perspective.Identity(), Layer: -1}),
			scenetest.Listing("b", def, tilemap.TilemapInst{Placement: perspective.Identity(), Layer: 5}),
		},
	})
	assert.Equal(t, []string{"a", "c", "b"}, labels(s.Tilemaps()))
}

func TestMakeSceneErrors(t *testing.T) {
	def := tilemaptest.GivenADiamondDef()

	t.Run("bad camera", func(t *testing.T) {
		_, err := scene.MakeScene(&scene.SceneDef{Name: "blind"})
		assert.ErrorIs(t, err, perspective.ErrBadCamera)
	})

	t.Run("duplicate labels", func(t *testing.T) {
		_, err := scene.MakeScene(&scene.SceneDef{
			Name:   "dupes",
			Camera: scenetest.DemoCamera(),
			Tilemaps: []*tilemap.Tilemap{
				scenetest.Listing("", def, tilemaptest.AtIdentity()),
				scenetest.Listing("", def, tilemaptest.AtIdentity()),
			},
		})
		assert.ErrorIs(t, err, scene.ErrDuplicateLabel)
	})

	t.Run("degenerate placement", func(t *testing.T) {
		_, err := scene.MakeScene(&scene.SceneDef{
			Name:     "squashed",
			Camera:   scenetest.DemoCamera(),
			Tilemaps: []*tilemap.Tilemap{scenetest.Listing("flat", def, tilemap.TilemapInst{})},
		})
		assert.ErrorIs(t, err, perspective.ErrDegeneratePlacement)
	})

	t.Run("unknown tilemap", func(t *testing.T) {
		_, err := scene.MakeScene(&scene.SceneDef{
			Name:     "lost",
			Camera:   scenetest.DemoCamera(),
			Tilemaps: []*tilemap.Tilemap{{Defname: "no-such-tilemap"}},
		})
		assert.True(t, errors.Is(err, base.ErrUnknownDef))
	})
}

func TestSetCamera(t *testing.T) {
	s := scenetest.GivenAScene(scenetest.GivenATwoLayerDef("resized"))
	cam := scenetest.DemoCamera()
	cam.Width = 0
	assert.ErrorIs(t, s.SetCamera(cam), perspective.ErrBadCamera)

	cam.Width, cam.Height = 640, 480
	require.NoError(t, s.SetCamera(cam))
	assert.Equal(t, 640, s.Projection().Camera().Width)
}

func TestCustomSentinel(t *testing.T) {
	def := scenetest.GivenATwoLayerDef("sentinel")
	def.Sentinel = &perspective.Point{X: 0, Y: 0}
	s := scenetest.GivenAScene(def)

	// The origin is inside both maps so the sentinel is picked up.
	assert.Len(t, s.Tick(nil), 2)
}
