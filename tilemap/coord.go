package tilemap

import "fmt"

// Coord is a cell in a tilemap, (0, 0) is the first cell of the first row.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Size is the number of cells along each axis of a tilemap.
type Size struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (s Size) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.X && c.Y < s.Y
}

func (s Size) Area() int {
	return s.X * s.Y
}

// Row-major index of c; only meaningful when s.Contains(c).
func (s Size) Index(c Coord) int {
	return c.Y*s.X + c.X
}

func (s Size) CoordAt(index int) Coord {
	return Coord{X: index % s.X, Y: index / s.X}
}
