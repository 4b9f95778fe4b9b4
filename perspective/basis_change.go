package perspective

import "github.com/MobRulesGames/mathgl"

// Builds the matrix taking tilemap-local points to world space along with its
// inverse. The placement is validated first so that the inverse is always
// well defined.
func MakePlacementMats(p Placement) (local, ilocal mathgl.Mat4, err error) {
	if err = p.Validate(); err != nil {
		return
	}

	// Reading right to left: scale, then rotate, then translate.
	var m mathgl.Mat4
	local.Translation(p.X, p.Y, 0)

	m.RotationZ(p.Angle)
	local.Multiply(&m)

	m.Scaling(p.ScaleX, p.ScaleY, 1)
	local.Multiply(&m)

	ilocal.Assign(&local)
	ilocal.Inverse()
	return
}

func transform(mat *mathgl.Mat4, p Point) Point {
	v := mathgl.Vec4{X: p.X, Y: p.Y, Z: 0, W: 1}
	v.Transform(mat)
	return Point{X: v.X, Y: v.Y}
}

// Takes a point in a tilemap's local space to world space.
func LocalToWorld(local *mathgl.Mat4, p Point) Point {
	return transform(local, p)
}

// Takes a world point into a tilemap's local space; ilocal must be the
// inverse matrix from MakePlacementMats.
func WorldToLocal(ilocal *mathgl.Mat4, p Point) Point {
	return transform(ilocal, p)
}
