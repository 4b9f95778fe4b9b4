package perspective_test

import (
	"errors"
	"math"
	"testing"

	"github.com/MobRulesGames/isopick/perspective"
	"github.com/MobRulesGames/isopick/perspective/perspectivetest"
	"github.com/MobRulesGames/mathgl"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rightAngle = math.Pi / 2

func TestLocalToWorld(t *testing.T) {
	ident := &mathgl.Mat4{}
	ident.Identity()
	p := perspective.LocalToWorld(ident, perspective.Point{X: 5, Y: 7})

	if p.X != 5 || p.Y != 7 {
		t.Fatalf("identity moved the point: %+v", p)
	}
}

func TestMakePlacementMats(t *testing.T) {
	t.Run("identity placement", func(t *testing.T) {
		local, ilocal, err := perspective.MakePlacementMats(perspective.Identity())
		require.NoError(t, err)

		var ident mathgl.Mat4
		ident.Identity()
		assert.Equal(t, ident, local)
		assert.Equal(t, ident, ilocal)
	})

	t.Run("translation lands in the last column", func(t *testing.T) {
		local, _, err := perspective.MakePlacementMats(perspective.Translated(4, 5))
		require.NoError(t, err)

		assert.Equal(t, float32(4), local[12])
		assert.Equal(t, float32(5), local[13])
	})

	t.Run("scale then rotate then translate", func(t *testing.T) {
		placement := perspective.Placement{X: 10, Y: 20, Angle: rightAngle, ScaleX: 2, ScaleY: 3}
		local, _, err := perspective.MakePlacementMats(placement)
		require.NoError(t, err)

		// (1, 0) -> scaled (2, 0) -> rotated (0, 2) -> translated (10, 22)
		got := perspective.LocalToWorld(&local, perspective.Point{X: 1, Y: 0})
		assert.True(t, perspectivetest.PointsAreNear(perspective.Point{X: 10, Y: 22}, got), "got %+v", got)

		// (0, 1) -> scaled (0, 3) -> rotated (-3, 0) -> translated (7, 20)
		got = perspective.LocalToWorld(&local, perspective.Point{X: 0, Y: 1})
		assert.True(t, perspectivetest.PointsAreNear(perspective.Point{X: 7, Y: 20}, got), "got %+v", got)
	})
}

func TestDegeneratePlacements(t *testing.T) {
	Convey("placements that can't be inverted", t, func() {
		nan := float32(math.NaN())
		inf := float32(math.Inf(1))

		for _, bad := range []perspective.Placement{
			{ScaleX: 0, ScaleY: 1},
			{ScaleX: 1, ScaleY: 0},
			{},
			{X: nan, ScaleX: 1, ScaleY: 1},
			{Angle: inf, ScaleX: 1, ScaleY: 1},
			{ScaleX: nan, ScaleY: 1},
		} {
			_, _, err := perspective.MakePlacementMats(bad)
			So(errors.Is(err, perspective.ErrDegeneratePlacement), ShouldBeTrue)
		}
	})

	Convey("negative scales are mirrors, not degenerate", t, func() {
		_, _, err := perspective.MakePlacementMats(perspective.Placement{ScaleX: -1, ScaleY: 2})
		So(err, ShouldBeNil)
	})
}

func TestWorldToLocalUndoesLocalToWorld(t *testing.T) {
	Convey("for a rotated, scaled, translated placement", t, func() {
		placement := perspective.Placement{X: -37.5, Y: 12, Angle: 0.7, ScaleX: 1.5, ScaleY: 0.5}
		local, ilocal, err := perspective.MakePlacementMats(placement)
		So(err, ShouldBeNil)

		for _, p := range []perspective.Point{{0, 0}, {1, 1}, {-40, 3}, {123.25, -64}} {
			world := perspective.LocalToWorld(&local, p)
			back := perspective.WorldToLocal(&ilocal, world)
			So(back.X, ShouldAlmostEqual, p.X, perspectivetest.Epsilon)
			So(back.Y, ShouldAlmostEqual, p.Y, perspectivetest.Epsilon)
		}
	})
}
