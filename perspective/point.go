package perspective

// A position in world space or in a tilemap's local space.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// A position on screen in pixels. The origin is the top-left corner of the
// viewport and Y grows downward.
type ScreenPoint struct {
	X float32
	Y float32
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}
