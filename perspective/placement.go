package perspective

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

var ErrDegeneratePlacement = errors.New("degenerate placement")

// Placement positions a tilemap in world space. Points in the tilemap's
// local space are scaled, then rotated counter-clockwise by Angle radians,
// then translated by (X, Y).
type Placement struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Angle  float32 `yaml:"angle"`
	ScaleX float32 `yaml:"scalex"`
	ScaleY float32 `yaml:"scaley"`
}

func Identity() Placement {
	return Placement{ScaleX: 1, ScaleY: 1}
}

func Translated(x, y float32) Placement {
	p := Identity()
	p.X, p.Y = x, y
	return p
}

// Omitted scales in a definition file mean 1; an explicit 0 is kept so that
// Validate can reject it.
func (p *Placement) UnmarshalYAML(value *yaml.Node) error {
	type plain Placement
	raw := plain(Identity())
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = Placement(raw)
	return nil
}

func badFloat(f float32) bool {
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

// Validate reports whether the placement can be inverted.
func (p Placement) Validate() error {
	for _, f := range []float32{p.X, p.Y, p.Angle, p.ScaleX, p.ScaleY} {
		if badFloat(f) {
			return fmt.Errorf("%w: non-finite component in %+v", ErrDegeneratePlacement, p)
		}
	}
	if p.ScaleX == 0 || p.ScaleY == 0 {
		return fmt.Errorf("%w: zero scale in %+v", ErrDegeneratePlacement, p)
	}
	return nil
}
