package perspective

import (
	"errors"
	"fmt"

	"github.com/MobRulesGames/mathgl"
)

var ErrBadCamera = errors.New("bad camera")

// Camera describes an orthographic view of world space. Focus is the world
// point drawn at the middle of the viewport and Scale is the number of world
// units covered by one screen pixel. PixelAspect is the height of a pixel
// divided by its width; terminals want roughly 2, windows want 1. A zero
// PixelAspect is treated as 1.
type Camera struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Focus       Point   `yaml:"focus"`
	Scale       float32 `yaml:"scale"`
	Angle       float32 `yaml:"angle"`
	PixelAspect float32 `yaml:"pixelaspect"`
}

func (cam Camera) Validate() error {
	if cam.Width <= 0 || cam.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrBadCamera, cam.Width, cam.Height)
	}
	if cam.Scale <= 0 || badFloat(cam.Scale) {
		return fmt.Errorf("%w: scale %v", ErrBadCamera, cam.Scale)
	}
	if cam.PixelAspect < 0 || badFloat(cam.PixelAspect) {
		return fmt.Errorf("%w: pixel aspect %v", ErrBadCamera, cam.PixelAspect)
	}
	if badFloat(cam.Angle) || badFloat(cam.Focus.X) || badFloat(cam.Focus.Y) {
		return fmt.Errorf("%w: non-finite focus or angle", ErrBadCamera)
	}
	return nil
}

// Returns the screen-to-world matrix and its inverse.
func MakeCameraMats(cam Camera) (view, iview mathgl.Mat4) {
	aspect := cam.PixelAspect
	if aspect == 0 {
		aspect = 1
	}

	var m mathgl.Mat4

	// Step 4: put the focus where the viewport centre ended up.
	view.Translation(cam.Focus.X, cam.Focus.Y, 0)

	// Step 3: spin the view about its centre.
	m.RotationZ(cam.Angle)
	view.Multiply(&m)

	// Step 2: pixels to world units, flipping Y so that world Y grows upward.
	m.Scaling(cam.Scale, -cam.Scale*aspect, 1)
	view.Multiply(&m)

	// Step 1: move the centre of the viewport to the origin.
	m.Translation(-float32(cam.Width)/2, -float32(cam.Height)/2, 0)
	view.Multiply(&m)

	iview.Assign(&view)
	iview.Inverse()
	return
}

// Projection maps between screen and world space for one Camera.
type Projection struct {
	cam         Camera
	view, iview mathgl.Mat4
}

func MakeProjection(cam Camera) (*Projection, error) {
	if err := cam.Validate(); err != nil {
		return nil, err
	}
	proj := &Projection{cam: cam}
	proj.view, proj.iview = MakeCameraMats(cam)
	return proj, nil
}

func (proj *Projection) Camera() Camera {
	return proj.cam
}

func (proj *Projection) InViewport(sp ScreenPoint) bool {
	return sp.X >= 0 && sp.Y >= 0 &&
		sp.X < float32(proj.cam.Width) && sp.Y < float32(proj.cam.Height)
}

// Positions outside of the viewport can't be projected and report false.
// A nil Projection projects nothing.
func (proj *Projection) ScreenToWorld(sp ScreenPoint) (Point, bool) {
	if proj == nil || !proj.InViewport(sp) {
		return Point{}, false
	}
	return transform(&proj.view, Point{X: sp.X, Y: sp.Y}), true
}

func (proj *Projection) WorldToScreen(p Point) ScreenPoint {
	s := transform(&proj.iview, p)
	return ScreenPoint{X: s.X, Y: s.Y}
}
