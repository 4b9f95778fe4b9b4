package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/MobRulesGames/isopick/scene"
	"github.com/MobRulesGames/isopick/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var background = color.RGBA{15, 15, 22, 255}
var hoverColor = color.RGBA{255, 220, 64, 255}

var layerColors = []color.RGBA{
	{90, 200, 120, 255},
	{90, 160, 220, 255},
	{220, 140, 90, 255},
	{190, 110, 210, 255},
}

func layerColor(layer int, occupied bool) color.RGBA {
	c := layerColors[((layer%len(layerColors))+len(layerColors))%len(layerColors)]
	if !occupied {
		c.R, c.G, c.B = c.R/3, c.G/3, c.B/3
	}
	return c
}

// Outlines one cell on screen, corners taken from world space through the
// camera.
func (g *Game) outline(screen *ebiten.Image, tm *tilemap.Tilemap, c tilemap.Coord, width float32, clr color.Color) {
	proj := g.scene.Projection()
	corners := tm.CornersInWorld(c)
	for i := range corners {
		a := proj.WorldToScreen(corners[i])
		b := proj.WorldToScreen(corners[(i+1)%len(corners)])
		vector.StrokeLine(screen, a.X, a.Y, b.X, b.Y, width, clr, true)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.scene.Each(func(tm *tilemap.Tilemap) {
		size := tm.Occupants().Size()
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				c := tilemap.Coord{X: x, Y: y}
				_, occupied := tm.Get(c)
				g.outline(screen, tm, c, 1, layerColor(tm.Layer, occupied))
			}
		}
	})

	if top, ok := scene.Topmost(g.hits); ok {
		g.outline(screen, top.Tilemap, top.Coord, 2, hoverColor)
	}

	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	var sb strings.Builder
	p := g.scene.Tracker().Current()
	fmt.Fprintf(&sb, "%s  pointer (%.1f, %.1f)\n", g.scene.Name(), p.X, p.Y)
	if len(g.hits) == 0 {
		sb.WriteString("nothing under the pointer\n")
	}
	for _, hit := range g.hits {
		if hit.Occupied {
			fmt.Fprintf(&sb, "layer %d %s %v: %d\n", hit.Layer, hit.Label, hit.Coord, hit.Occupant)
		} else {
			fmt.Fprintf(&sb, "layer %d %s %v: empty\n", hit.Layer, hit.Label, hit.Coord)
		}
	}
	sb.WriteString("left click paints, right click clears, esc quits")
	return sb.String()
}
