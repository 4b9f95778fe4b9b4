package tilemap_test

import (
	"errors"
	"testing"

	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/perspective/perspectivetest"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/MobRulesGames/isopick/tilemap/tilemaptest"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickRoundTrips(t *testing.T) {
	for _, def := range []*tilemap.TilemapDef{tilemaptest.GivenADiamondDef(), tilemaptest.GivenAnOrthogonalDef()} {
		for name, inst := range map[string]tilemap.TilemapInst{
			"identity": tilemaptest.AtIdentity(),
			"awkward":  tilemaptest.AtAnAwkwardPlacement(),
			"centered": {Placement: perspective.Translated(3, -2), Centered: true},
		} {
			t.Run(def.System.String()+"/"+name, func(t *testing.T) {
				tm := tilemaptest.GivenAFilledTilemap(def, inst)
				tilemaptest.EachCell(def, func(c tilemap.Coord) {
					center := tm.CenterInWorld(c)

					got, ok := tm.Pick(center)
					require.True(t, ok, "centre of %v at %+v", c, center)
					assert.Equal(t, c, got)

					id, ok := tm.Resolve(center)
					require.True(t, ok)
					assert.Equal(t, tilemap.OccupantID(def.Size.Index(c)+1), id)
				})
			})
		}
	}
}

func EndToEndSpec() {
	tm := tilemaptest.GivenAFilledTilemap(tilemaptest.GivenADiamondDef(), tilemaptest.AtIdentity())
	target := tilemap.Coord{X: 3, Y: 4}
	center := tm.CenterInWorld(target)

	Convey("the centre of (3, 4) is where the diamond is drawn", func() {
		So(center, ShouldResemble, perspective.Point{X: 56, Y: 4})
	})

	Convey("the centre of (3, 4) resolves to its occupant", func() {
		c, ok := tm.Pick(center)
		So(ok, ShouldBeTrue)
		So(c, ShouldResemble, target)

		id, ok := tm.Resolve(center)
		So(ok, ShouldBeTrue)
		want, _ := tm.Get(target)
		So(id, ShouldEqual, want)
	})

	Convey("a point far away resolves to nothing", func() {
		_, ok := tm.Resolve(perspective.Point{X: 10000, Y: 10000})
		So(ok, ShouldBeFalse)
	})

	Convey("setting 7 at (3, 4) changes what the centre resolves to", func() {
		So(tm.Set(target, 7), ShouldBeNil)
		id, ok := tm.Resolve(center)
		So(ok, ShouldBeTrue)
		So(id, ShouldEqual, 7)
	})

	Convey("an emptied cell resolves to nothing but is still picked", func() {
		So(tm.Remove(target), ShouldBeNil)
		_, ok := tm.Resolve(center)
		So(ok, ShouldBeFalse)

		c, ok := tm.Pick(center)
		So(ok, ShouldBeTrue)
		So(c, ShouldResemble, target)
	})

	Convey("resolving is idempotent", func() {
		first, firstOk := tm.Resolve(center)
		for i := 0; i < 10; i++ {
			id, ok := tm.Resolve(center)
			So(ok, ShouldEqual, firstOk)
			So(id, ShouldEqual, first)
		}
		So(tm.Occupants().Count(), ShouldEqual, 64)
	})
}

func TestEndToEnd(t *testing.T) {
	Convey("an 8x8 diamond map of 16x8 cells at the identity", t, EndToEndSpec)
}

func TestEmptySlots(t *testing.T) {
	Convey("a fresh tilemap", t, func() {
		tm := tilemaptest.GivenATilemap(tilemaptest.GivenAnOrthogonalDef(), tilemaptest.AtAnAwkwardPlacement())
		c := tilemap.Coord{X: 4, Y: 2}
		center := tm.CenterInWorld(c)

		Convey("resolves nothing on a valid cell", func() {
			_, ok := tm.Resolve(center)
			So(ok, ShouldBeFalse)
		})

		Convey("resolves what is set", func() {
			So(tm.Set(c, 12), ShouldBeNil)
			id, ok := tm.Resolve(center)
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, 12)
		})

		Convey("refuses out of bounds writes", func() {
			So(errors.Is(tm.Set(tilemap.Coord{X: 9, Y: 0}, 1), tilemap.ErrOutOfBounds), ShouldBeTrue)
		})
	})
}

func TestOutOfRange(t *testing.T) {
	def := tilemaptest.GivenADiamondDef()
	tm := tilemaptest.GivenAFilledTilemap(def, tilemaptest.AtAnAwkwardPlacement())

	// Centres of the ring of cells just outside the map, carried into world
	// space through the same placement.
	for x := -1; x <= def.Size.X; x++ {
		for _, y := range []int{-1, def.Size.Y} {
			for _, c := range []tilemap.Coord{{X: x, Y: y}, {X: y, Y: x}} {
				world := tm.LocalToWorld(def.CellCenter(c))
				_, ok := tm.Pick(world)
				assert.False(t, ok, "%v should be outside", c)
				_, ok = tm.Resolve(world)
				assert.False(t, ok, "%v should be outside", c)
			}
		}
	}
}

func TestMakeTilemapRejectsBadConfig(t *testing.T) {
	t.Run("degenerate placement", func(t *testing.T) {
		inst := tilemap.TilemapInst{Placement: perspective.Placement{ScaleX: 1, ScaleY: 0}}
		_, err := tilemap.MakeTilemap(tilemaptest.GivenADiamondDef(), inst)
		assert.ErrorIs(t, err, perspective.ErrDegeneratePlacement)
	})

	t.Run("zero placement", func(t *testing.T) {
		_, err := tilemap.MakeTilemap(tilemaptest.GivenADiamondDef(), tilemap.TilemapInst{})
		assert.ErrorIs(t, err, perspective.ErrDegeneratePlacement)
	})

	t.Run("bad geometry", func(t *testing.T) {
		def := tilemaptest.GivenADiamondDef()
		def.Size.Y = 0
		_, err := tilemap.MakeTilemap(def, tilemaptest.AtIdentity())
		assert.ErrorIs(t, err, tilemap.ErrBadGeometry)
	})

	t.Run("no def", func(t *testing.T) {
		_, err := tilemap.MakeTilemap(nil, tilemaptest.AtIdentity())
		assert.ErrorIs(t, err, tilemap.ErrBadGeometry)
	})
}

func TestCenterPlacement(t *testing.T) {
	t.Run("diamond", func(t *testing.T) {
		// Cell (7, 7) is centred at (112, 0) so the map shifts left by half.
		p := tilemap.CenterPlacement(tilemaptest.GivenADiamondDef())
		assert.Equal(t, perspective.Translated(-56, 0), p)
	})

	t.Run("orthogonal", func(t *testing.T) {
		p := tilemap.CenterPlacement(tilemaptest.GivenAnOrthogonalDef())
		assert.Equal(t, perspective.Translated(-360, -250), p)
	})

	t.Run("centered tilemaps straddle their placement", func(t *testing.T) {
		def := tilemaptest.GivenAnOrthogonalDef()
		tm := tilemaptest.GivenATilemap(def, tilemap.TilemapInst{Placement: perspective.Translated(10, 20), Centered: true})
		c, ok := tm.Pick(perspective.Point{X: 10, Y: 20})
		require.True(t, ok)
		assert.Equal(t, tilemap.Coord{X: 4, Y: 2}, c)
	})
}

func TestCornersInWorld(t *testing.T) {
	def := tilemaptest.GivenADiamondDef()
	tm := tilemaptest.GivenATilemap(def, tilemaptest.AtIdentity())
	corners := tm.CornersInWorld(tilemap.Coord{X: 1, Y: 0})
	want := [4]perspective.Point{{X: 0, Y: -4}, {X: 8, Y: -8}, {X: 16, Y: -4}, {X: 8, Y: 0}}
	for i := range want {
		assert.True(t, perspectivetest.PointsAreNear(want[i], corners[i]), "corner %d: got %+v", i, corners[i])
	}
}
