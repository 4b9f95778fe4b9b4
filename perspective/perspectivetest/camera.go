package perspectivetest

import (
	"math"

	"github.com/MobRulesGames/isopick/perspective"
)

type CameraBuilder struct {
	perspective.Camera
}

// A 200x200 viewport looking at the origin, one world unit per pixel.
func Camera() CameraBuilder {
	return CameraBuilder{
		Camera: perspective.Camera{
			Width:  200,
			Height: 200,
			Scale:  1,
		},
	}
}

func (b CameraBuilder) ForSize(dx, dy int) CameraBuilder {
	b.Width, b.Height = dx, dy
	return b
}

func (b CameraBuilder) AtFocus(x, y float32) CameraBuilder {
	b.Focus = perspective.Point{X: x, Y: y}
	return b
}

func (b CameraBuilder) AtScale(s float32) CameraBuilder {
	b.Scale = s
	return b
}

func (b CameraBuilder) AtAngle(radians float32) CameraBuilder {
	b.Angle = radians
	return b
}

func (b CameraBuilder) WithPixelAspect(aspect float32) CameraBuilder {
	b.PixelAspect = aspect
	return b
}

func (b CameraBuilder) Projection() *perspective.Projection {
	proj, err := perspective.MakeProjection(b.Camera)
	if err != nil {
		panic(err)
	}
	return proj
}

// mathgl trades accuracy for speed so rotated results are only close.
const Epsilon = 1e-3

func PointsAreNear(lhs, rhs perspective.Point) bool {
	return math.Abs(float64(lhs.X-rhs.X)) < Epsilon && math.Abs(float64(lhs.Y-rhs.Y)) < Epsilon
}
